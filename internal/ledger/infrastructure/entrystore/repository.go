package entrystore

import (
	"context"
	"errors"
	"fmt"

	"facilityops/internal/docstore"
	ledger "facilityops/internal/ledger/domain"
)

// DocumentName is the ledger document within each facility partition.
const DocumentName = "DPH"

// Repository persists facility ledgers as one document per facility holding
// the full entries array. Every mutation is a read-modify-write of the whole
// array; the write is conditional on the version seen at read time so two
// racing submissions cannot silently drop each other's entries.
type Repository struct {
	store docstore.Store
}

// NewRepository constructs a repository.
func NewRepository(store docstore.Store) (*Repository, error) {
	if store == nil {
		return nil, errors.New("ledger repo: nil store")
	}
	return &Repository{store: store}, nil
}

// List returns the facility's entries. A missing document is a valid "no
// ledger yet" state and yields an empty slice.
func (r *Repository) List(ctx context.Context, facilityID string) ([]ledger.Entry, error) {
	if facilityID == "" {
		return nil, ledger.ErrEmptyFacilityID
	}
	doc, err := r.store.Get(ctx, facilityID, DocumentName)
	if err != nil {
		return nil, fmt.Errorf("ledger repo: load %s: %w", facilityID, err)
	}
	return ledger.EntriesFromDocument(doc), nil
}

// Upsert replaces the entry with the same date or appends a new one, then
// writes the full list back as one overwrite.
func (r *Repository) Upsert(ctx context.Context, facilityID string, entry ledger.Entry) error {
	if facilityID == "" {
		return ledger.ErrEmptyFacilityID
	}
	if entry.Date == "" {
		return ledger.ErrEmptyDate
	}

	doc, err := r.store.Get(ctx, facilityID, DocumentName)
	if err != nil {
		return fmt.Errorf("ledger repo: load %s: %w", facilityID, err)
	}
	entries := ledger.EntriesFromDocument(doc)

	replaced := false
	for i := range entries {
		if entries[i].Date == entry.Date {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	var version int64
	if doc != nil {
		version = doc.Version
	}
	if err := r.store.SetIfVersion(ctx, facilityID, DocumentName, ledger.EntriesFields(entries), version); err != nil {
		return fmt.Errorf("ledger repo: save %s: %w", facilityID, err)
	}
	return nil
}

// Clear empties the facility's ledger. Callers must only invoke this after
// a confirmed export upload.
func (r *Repository) Clear(ctx context.Context, facilityID string) error {
	if facilityID == "" {
		return ledger.ErrEmptyFacilityID
	}
	if err := r.store.Set(ctx, facilityID, DocumentName, ledger.EntriesFields(nil)); err != nil {
		return fmt.Errorf("ledger repo: clear %s: %w", facilityID, err)
	}
	return nil
}
