package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"facilityops/internal/docstore"
)

// Store is an in-memory document store for tests and local development.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]*docstore.Document
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{data: make(map[string]map[string]*docstore.Document)}
}

// Get returns a deep copy of the document or nil when absent.
func (s *Store) Get(ctx context.Context, partition, name string) (*docstore.Document, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := s.data[partition][name]
	if doc == nil {
		return nil, nil
	}
	return cloneDocument(doc), nil
}

// Set overwrites the document unconditionally.
func (s *Store) Set(ctx context.Context, partition, name string, fields docstore.Fields) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.data[partition][name]
	var version int64 = 1
	if current != nil {
		version = current.Version + 1
	}
	s.put(partition, name, fields, version)
	return nil
}

// SetIfVersion overwrites the document only on a version match.
func (s *Store) SetIfVersion(ctx context.Context, partition, name string, fields docstore.Fields, version int64) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.data[partition][name]
	if version == 0 {
		if current != nil {
			return docstore.ErrVersionConflict
		}
		s.put(partition, name, fields, 1)
		return nil
	}
	if current == nil || current.Version != version {
		return docstore.ErrVersionConflict
	}
	s.put(partition, name, fields, version+1)
	return nil
}

// Append appends value to the named array field.
func (s *Store) Append(ctx context.Context, partition, name, field string, value any) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.data[partition][name]
	if current == nil {
		s.put(partition, name, docstore.Fields{field: []any{value}}, 1)
		return nil
	}
	fields := cloneFields(current.Fields)
	list, _ := fields[field].([]any)
	fields[field] = append(list, value)
	s.put(partition, name, fields, current.Version+1)
	return nil
}

// List returns all documents of a partition ordered by name.
func (s *Store) List(ctx context.Context, partition string) ([]docstore.Document, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.data[partition]
	result := make([]docstore.Document, 0, len(docs))
	for _, doc := range docs {
		result = append(result, *cloneDocument(doc))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Partitions returns all partition identifiers ordered lexicographically.
func (s *Store) Partitions(ctx context.Context) ([]string, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, 0, len(s.data))
	for partition, docs := range s.data {
		if len(docs) == 0 {
			continue
		}
		result = append(result, partition)
	}
	sort.Strings(result)
	return result, nil
}

func (s *Store) put(partition, name string, fields docstore.Fields, version int64) {
	if s.data[partition] == nil {
		s.data[partition] = make(map[string]*docstore.Document)
	}
	s.data[partition][name] = &docstore.Document{
		Name:    name,
		Fields:  cloneFields(fields),
		Version: version,
	}
}

// cloneFields round-trips through JSON so stored documents share no memory
// with callers and carry the same types the postgres store would return.
func cloneFields(fields docstore.Fields) docstore.Fields {
	if fields == nil {
		return docstore.Fields{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return docstore.Fields{}
	}
	var out docstore.Fields
	if err := json.Unmarshal(data, &out); err != nil {
		return docstore.Fields{}
	}
	return out
}

func cloneDocument(doc *docstore.Document) *docstore.Document {
	return &docstore.Document{
		Name:    doc.Name,
		Fields:  cloneFields(doc.Fields),
		Version: doc.Version,
	}
}
