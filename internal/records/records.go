package records

import (
	"context"
	"errors"
	"fmt"

	"facilityops/internal/docstore"
)

// Document names of the dated-record documents inside a facility partition.
// The names are fixed by the deployed data set and must not be renamed.
const (
	DocBioWaste            = "Bioodpad"
	DocPreparation         = "Krajane_veci"
	DocPreparationItems    = "Text_KrajaneVeci"
	DocPreparationTimes    = "Cas_KrajaneVeci"
	DocQuarterlySanitation = "Kvartalna_Sanitacia"
	DocDailySanitation     = "Denna_Sanitacia"
	DocDailySanitationText = "Text_Denna_Sanitacia"
	DocTemperatures        = "Teploty"
	DocFridgeCount         = "Pocet_chladniciek"
	DocTemperatureRange    = "Teploty_rozsah"
)

// ErrEmptyFacilityID is returned when a facility identifier is missing.
var ErrEmptyFacilityID = errors.New("records: empty facility id")

// Service reads and appends dated record entries. All record kinds share the
// same document shape: a facility-partition document with one entries array.
type Service struct {
	store docstore.Store
}

// NewService constructs a service.
func NewService(store docstore.Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("records: nil store")
	}
	return &Service{store: store}, nil
}

// History returns the entries of one record document; a missing document is
// an empty history.
func (s *Service) History(ctx context.Context, facilityID, document string) ([]map[string]any, error) {
	if facilityID == "" {
		return nil, ErrEmptyFacilityID
	}
	doc, err := s.store.Get(ctx, facilityID, document)
	if err != nil {
		return nil, fmt.Errorf("records: load %s/%s: %w", facilityID, document, err)
	}
	raw := docstore.Entries(doc)
	entries := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if fields, ok := item.(map[string]any); ok {
			entries = append(entries, fields)
		}
	}
	return entries, nil
}

// Append adds one entry to a record document.
func (s *Service) Append(ctx context.Context, facilityID, document string, entry map[string]any) error {
	if facilityID == "" {
		return ErrEmptyFacilityID
	}
	if err := s.store.Append(ctx, facilityID, document, docstore.EntriesField, entry); err != nil {
		return fmt.Errorf("records: append %s/%s: %w", facilityID, document, err)
	}
	return nil
}

// Text returns a single named text field from a facility document, empty
// when the document or field is absent.
func (s *Service) Text(ctx context.Context, facilityID, document, field string) (string, error) {
	if facilityID == "" {
		return "", ErrEmptyFacilityID
	}
	doc, err := s.store.Get(ctx, facilityID, document)
	if err != nil {
		return "", fmt.Errorf("records: load %s/%s: %w", facilityID, document, err)
	}
	if doc == nil {
		return "", nil
	}
	text, _ := doc.Fields[field].(string)
	return text, nil
}
