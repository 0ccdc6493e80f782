package memory

import (
	"context"
	"errors"
	"testing"

	"facilityops/internal/docstore"
)

func TestGetAbsentDocument(t *testing.T) {
	store := NewStore()
	doc, err := store.Get(context.Background(), "facility-1", "DPH")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc != nil {
		t.Fatalf("absent document should be nil, got %+v", doc)
	}
}

func TestSetIncrementsVersion(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Set(ctx, "facility-1", "DPH", docstore.Fields{"a": 1}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "facility-1", "DPH", docstore.Fields{"a": 2}); err != nil {
		t.Fatalf("set: %v", err)
	}

	doc, err := store.Get(ctx, "facility-1", "DPH")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Version != 2 {
		t.Fatalf("version: got %d", doc.Version)
	}
}

func TestSetIfVersionConflicts(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	// Version 0 means create-only.
	if err := store.SetIfVersion(ctx, "facility-1", "DPH", docstore.Fields{"a": 1}, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.SetIfVersion(ctx, "facility-1", "DPH", docstore.Fields{"a": 2}, 0); !errors.Is(err, docstore.ErrVersionConflict) {
		t.Fatalf("create over existing should conflict, got %v", err)
	}

	if err := store.SetIfVersion(ctx, "facility-1", "DPH", docstore.Fields{"a": 2}, 1); err != nil {
		t.Fatalf("update at version 1: %v", err)
	}
	if err := store.SetIfVersion(ctx, "facility-1", "DPH", docstore.Fields{"a": 3}, 1); !errors.Is(err, docstore.ErrVersionConflict) {
		t.Fatalf("stale update should conflict, got %v", err)
	}
}

func TestAppend(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Append(ctx, "facility-1", "Bioodpad", docstore.EntriesField, map[string]any{"date": "2026-03-01"}); err != nil {
		t.Fatalf("append to absent doc: %v", err)
	}
	if err := store.Append(ctx, "facility-1", "Bioodpad", docstore.EntriesField, map[string]any{"date": "2026-03-02"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	doc, err := store.Get(ctx, "facility-1", "Bioodpad")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	entries := docstore.Entries(doc)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestListOrdersByName(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_ = store.Set(ctx, "Nakupne_zoznamy", "bravo", docstore.Fields{})
	_ = store.Set(ctx, "Nakupne_zoznamy", "alpha", docstore.Fields{})

	docs, err := store.List(ctx, "Nakupne_zoznamy")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 || docs[0].Name != "alpha" || docs[1].Name != "bravo" {
		t.Fatalf("unexpected listing: %+v", docs)
	}
}

func TestDocumentsAreIsolatedCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	fields := docstore.Fields{"items": []any{map[string]any{"name": "milk"}}}
	_ = store.Set(ctx, "facility-1", "list", fields)

	doc, _ := store.Get(ctx, "facility-1", "list")
	items := doc.Fields["items"].([]any)
	items[0].(map[string]any)["name"] = "mutated"

	fresh, _ := store.Get(ctx, "facility-1", "list")
	name := fresh.Fields["items"].([]any)[0].(map[string]any)["name"]
	if name != "milk" {
		t.Fatalf("stored document must not share memory with callers, got %q", name)
	}
}
