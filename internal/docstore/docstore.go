package docstore

import (
	"context"
	"errors"
)

// Fields holds the decoded field map of one document.
type Fields map[string]any

// Document is one stored document within a partition.
type Document struct {
	Name    string
	Fields  Fields
	Version int64
}

var (
	// ErrVersionConflict is returned when a conditional write loses a race.
	ErrVersionConflict = errors.New("docstore: version conflict")
	// ErrUnavailable wraps transport/driver failures talking to the store.
	ErrUnavailable = errors.New("docstore: unavailable")
)

// Store is a document database addressed by (partition, document name).
// Partitions are free-text facility identifiers plus the "Global" partition;
// there is no separate partition registry, existing partitions are discovered
// empirically via Partitions.
type Store interface {
	// Get returns the document or nil when it does not exist.
	Get(ctx context.Context, partition, name string) (*Document, error)
	// Set overwrites the document unconditionally, creating it if needed.
	Set(ctx context.Context, partition, name string, fields Fields) error
	// SetIfVersion overwrites the document only when its current version
	// matches. Version 0 means the document must not exist yet. Returns
	// ErrVersionConflict when the check fails.
	SetIfVersion(ctx context.Context, partition, name string, fields Fields, version int64) error
	// Append appends value to the named array field, creating the document
	// with a single-element array when missing.
	Append(ctx context.Context, partition, name, field string, value any) error
	// List returns all documents of a partition.
	List(ctx context.Context, partition string) ([]Document, error)
	// Partitions returns the identifiers of all partitions that hold at
	// least one document.
	Partitions(ctx context.Context) ([]string, error)
}

// EntriesField is the array field shared by all dated-entry documents.
const EntriesField = "entries"

// GlobalPartition holds deployment-wide documents (facility directory,
// admin code, device timer).
const GlobalPartition = "Global"

// Entries extracts the entries array from a document, tolerating a missing
// document or a missing/mistyped field. A nil document yields nil.
func Entries(doc *Document) []any {
	if doc == nil {
		return nil
	}
	raw, ok := doc.Fields[EntriesField]
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	return list
}
