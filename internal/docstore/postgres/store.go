package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"facilityops/internal/docstore"
)

// Store persists documents in a single jsonb-backed table. Versioned writes
// use the version column for optimistic concurrency: a full-document
// overwrite only succeeds when the version seen at read time is still
// current.
type Store struct {
	db *sql.DB
}

// NewStore constructs a store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the documents table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("docstore: nil db")
	}
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS facility_documents (
	partition TEXT NOT NULL,
	name TEXT NOT NULL,
	fields JSONB NOT NULL DEFAULT '{}'::jsonb,
	version BIGINT NOT NULL DEFAULT 1,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (partition, name)
)`)
	if err != nil {
		return fmt.Errorf("%w: ensure schema: %v", docstore.ErrUnavailable, err)
	}
	return nil
}

// Get returns the document or nil when it does not exist.
func (s *Store) Get(ctx context.Context, partition, name string) (*docstore.Document, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("docstore: nil db")
	}
	var raw []byte
	var version int64
	err := s.db.QueryRowContext(ctx, `
SELECT fields, version FROM facility_documents
WHERE partition = $1 AND name = $2`, partition, name).Scan(&raw, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s/%s: %v", docstore.ErrUnavailable, partition, name, err)
	}
	fields, err := decodeFields(raw)
	if err != nil {
		return nil, err
	}
	return &docstore.Document{Name: name, Fields: fields, Version: version}, nil
}

// Set overwrites the document unconditionally.
func (s *Store) Set(ctx context.Context, partition, name string, fields docstore.Fields) error {
	raw, err := encodeFields(fields)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO facility_documents (partition, name, fields, version, updated_at)
VALUES ($1, $2, $3, 1, now())
ON CONFLICT (partition, name) DO UPDATE
SET fields = EXCLUDED.fields,
	version = facility_documents.version + 1,
	updated_at = now()`, partition, name, raw)
	if err != nil {
		return fmt.Errorf("%w: set %s/%s: %v", docstore.ErrUnavailable, partition, name, err)
	}
	return nil
}

// SetIfVersion overwrites the document only when its version matches.
func (s *Store) SetIfVersion(ctx context.Context, partition, name string, fields docstore.Fields, version int64) error {
	raw, err := encodeFields(fields)
	if err != nil {
		return err
	}
	if version == 0 {
		res, err := s.db.ExecContext(ctx, `
INSERT INTO facility_documents (partition, name, fields, version, updated_at)
VALUES ($1, $2, $3, 1, now())
ON CONFLICT (partition, name) DO NOTHING`, partition, name, raw)
		if err != nil {
			return fmt.Errorf("%w: create %s/%s: %v", docstore.ErrUnavailable, partition, name, err)
		}
		return conflictUnlessOneRow(res)
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE facility_documents
SET fields = $3, version = version + 1, updated_at = now()
WHERE partition = $1 AND name = $2 AND version = $4`, partition, name, raw, version)
	if err != nil {
		return fmt.Errorf("%w: set %s/%s: %v", docstore.ErrUnavailable, partition, name, err)
	}
	return conflictUnlessOneRow(res)
}

// Append appends value to the named array field in one statement, so
// concurrent appenders never drop each other's entries.
func (s *Store) Append(ctx context.Context, partition, name, field string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("docstore: encode append value: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO facility_documents (partition, name, fields, version, updated_at)
VALUES ($1, $2, jsonb_build_object($3::text, jsonb_build_array($4::jsonb)), 1, now())
ON CONFLICT (partition, name) DO UPDATE
SET fields = jsonb_set(
		facility_documents.fields,
		ARRAY[$3::text],
		COALESCE(facility_documents.fields -> $3::text, '[]'::jsonb) || $4::jsonb
	),
	version = facility_documents.version + 1,
	updated_at = now()`, partition, name, field, raw)
	if err != nil {
		return fmt.Errorf("%w: append %s/%s: %v", docstore.ErrUnavailable, partition, name, err)
	}
	return nil
}

// List returns all documents of a partition ordered by name.
func (s *Store) List(ctx context.Context, partition string) ([]docstore.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, fields, version FROM facility_documents
WHERE partition = $1
ORDER BY name`, partition)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", docstore.ErrUnavailable, partition, err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var name string
		var raw []byte
		var version int64
		if err := rows.Scan(&name, &raw, &version); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", docstore.ErrUnavailable, partition, err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, docstore.Document{Name: name, Fields: fields, Version: version})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", docstore.ErrUnavailable, partition, err)
	}
	return docs, nil
}

// Partitions returns the identifiers of all non-empty partitions.
func (s *Store) Partitions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT DISTINCT partition FROM facility_documents ORDER BY partition`)
	if err != nil {
		return nil, fmt.Errorf("%w: partitions: %v", docstore.ErrUnavailable, err)
	}
	defer rows.Close()

	var partitions []string
	for rows.Next() {
		var partition string
		if err := rows.Scan(&partition); err != nil {
			return nil, fmt.Errorf("%w: partitions: %v", docstore.ErrUnavailable, err)
		}
		partitions = append(partitions, partition)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: partitions: %v", docstore.ErrUnavailable, err)
	}
	return partitions, nil
}

func conflictUnlessOneRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", docstore.ErrUnavailable, err)
	}
	if affected == 0 {
		return docstore.ErrVersionConflict
	}
	return nil
}

func encodeFields(fields docstore.Fields) ([]byte, error) {
	if fields == nil {
		fields = docstore.Fields{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("docstore: encode fields: %w", err)
	}
	return raw, nil
}

func decodeFields(raw []byte) (docstore.Fields, error) {
	fields := docstore.Fields{}
	if len(raw) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("docstore: decode fields: %w", err)
	}
	return fields, nil
}
