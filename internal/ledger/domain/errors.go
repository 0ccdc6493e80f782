package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTotalMismatch is returned when the component fields do not sum to
	// the declared grand total. The entry is never stored.
	ErrTotalMismatch = errors.New("ledger: components do not sum to grand total, correct the entry and resubmit")
	// ErrNoData is returned when an export is attempted on an empty ledger.
	ErrNoData = errors.New("ledger: no data to export")
	// ErrEmptyFacilityID is returned when a facility identifier is missing.
	ErrEmptyFacilityID = errors.New("ledger: empty facility id")
	// ErrEmptyDate is returned when an entry carries no date.
	ErrEmptyDate = errors.New("ledger: empty entry date")
)

// GapsError reports days of the export month that have no recorded entry.
// It is a user decision point, not a fatal failure: the caller may correct
// the missing days or re-invoke the export with the gap check bypassed.
type GapsError struct {
	MissingDays []string
}

func (e *GapsError) Error() string {
	return fmt.Sprintf("ledger: %d missing days in export month: %s",
		len(e.MissingDays), strings.Join(e.MissingDays, ", "))
}
