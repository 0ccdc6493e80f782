package shopping

import (
	"context"
	"errors"
	"fmt"

	"facilityops/internal/docstore"
)

// Partition names of the shopping list document groups. One document per
// facility, named by the facility identifier.
const (
	PartitionLists     = "Nakupne_zoznamy"
	PartitionTempLists = "Docasne_Nakupne_Zoznamy"
)

// ErrEmptyFacilityID is returned when a facility identifier is missing.
var ErrEmptyFacilityID = errors.New("shopping: empty facility id")

// Service reads and writes facility shopping lists.
type Service struct {
	store docstore.Store
}

// NewService constructs a service.
func NewService(store docstore.Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("shopping: nil store")
	}
	return &Service{store: store}, nil
}

// Facilities returns the facility identifiers that have a list document in
// the given partition.
func (s *Service) Facilities(ctx context.Context, partition string) ([]string, error) {
	docs, err := s.store.List(ctx, partition)
	if err != nil {
		return nil, fmt.Errorf("shopping: list %s: %w", partition, err)
	}
	facilities := make([]string, 0, len(docs))
	for _, doc := range docs {
		facilities = append(facilities, doc.Name)
	}
	return facilities, nil
}

// Items returns the facility's list document fields, empty when absent.
func (s *Service) Items(ctx context.Context, partition, facilityID string) (docstore.Fields, error) {
	if facilityID == "" {
		return nil, ErrEmptyFacilityID
	}
	doc, err := s.store.Get(ctx, partition, facilityID)
	if err != nil {
		return nil, fmt.Errorf("shopping: load %s/%s: %w", partition, facilityID, err)
	}
	if doc == nil {
		return docstore.Fields{}, nil
	}
	return doc.Fields, nil
}

// Save overwrites the facility's main list. When the list carries at least
// one item with a quantity it is mirrored into the temporary partition;
// saving an emptied main list deliberately leaves the temporary copy alone.
func (s *Service) Save(ctx context.Context, facilityID string, fields docstore.Fields) error {
	if facilityID == "" {
		return ErrEmptyFacilityID
	}
	if err := s.store.Set(ctx, PartitionLists, facilityID, fields); err != nil {
		return fmt.Errorf("shopping: save %s: %w", facilityID, err)
	}
	if hasQuantities(fields) {
		if err := s.store.Set(ctx, PartitionTempLists, facilityID, fields); err != nil {
			return fmt.Errorf("shopping: mirror %s: %w", facilityID, err)
		}
	}
	return nil
}

func hasQuantities(fields docstore.Fields) bool {
	items, ok := fields["items"].([]any)
	if !ok {
		return false
	}
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		quantity, ok := entry["quantity"]
		if !ok {
			continue
		}
		if text, isString := quantity.(string); isString && text == "" {
			continue
		}
		return true
	}
	return false
}
