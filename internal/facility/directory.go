package facility

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"facilityops/internal/docstore"
)

const (
	directoryDocument = "Prevadzky"
	timerDocument     = "Casovac_aplikacia"
	timerField        = "cas"
)

// Directory resolves deployment-wide facility metadata from the Global
// partition.
type Directory struct {
	store docstore.Store
}

// NewDirectory constructs a directory.
func NewDirectory(store docstore.Store) (*Directory, error) {
	if store == nil {
		return nil, errors.New("facility: nil store")
	}
	return &Directory{store: store}, nil
}

// Facilities returns the configured facility id -> display name map. There
// is no separate facility registry; this document is maintained by hand.
func (d *Directory) Facilities(ctx context.Context) (map[string]string, error) {
	doc, err := d.store.Get(ctx, docstore.GlobalPartition, directoryDocument)
	if err != nil {
		return nil, fmt.Errorf("facility: load directory: %w", err)
	}
	facilities := map[string]string{}
	if doc == nil {
		return facilities, nil
	}
	for id, value := range doc.Fields {
		if name, ok := value.(string); ok {
			facilities[id] = name
		}
	}
	return facilities, nil
}

// TimerMinutes returns the device auto-lock timer, 0 when unset or
// unparseable.
func (d *Directory) TimerMinutes(ctx context.Context) (int, error) {
	doc, err := d.store.Get(ctx, docstore.GlobalPartition, timerDocument)
	if err != nil {
		return 0, fmt.Errorf("facility: load timer: %w", err)
	}
	if doc == nil {
		return 0, nil
	}
	switch v := doc.Fields[timerField].(type) {
	case float64:
		return int(v), nil
	case string:
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return 0, nil
		}
		return minutes, nil
	default:
		return 0, nil
	}
}
