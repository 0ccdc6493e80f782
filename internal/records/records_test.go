package records

import (
	"context"
	"testing"

	"facilityops/internal/docstore"
	"facilityops/internal/docstore/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	service, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service, store
}

func TestHistoryAndAppend(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	entries, err := service.History(ctx, "facility-1", DocBioWaste)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("absent document should be empty history, got %d", len(entries))
	}

	if err := service.Append(ctx, "facility-1", DocBioWaste, map[string]any{"date": "2026-03-01", "amount": "2kg"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := service.Append(ctx, "facility-1", DocBioWaste, map[string]any{"date": "2026-03-02", "amount": "1kg"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err = service.History(ctx, "facility-1", DocBioWaste)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0]["amount"] != "2kg" {
		t.Fatalf("entries should keep append order, got %v", entries[0])
	}
}

func TestPreparationItemsOrdered(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	_ = store.Set(ctx, "facility-1", DocPreparationItems, docstore.Fields{
		"item2": "cibuľa",
		"item1": "paradajky",
		"item3": "šalát",
	})

	items, err := service.PreparationItems(ctx, "facility-1")
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	want := []string{"paradajky", "cibuľa", "šalát"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %v", len(want), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("item %d: got %q, want %q", i, items[i], want[i])
		}
	}
}

func TestPreparationTimesDefaults(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	window, err := service.PreparationTimes(ctx, "facility-1")
	if err != nil {
		t.Fatalf("times: %v", err)
	}
	if window != nil {
		t.Fatalf("absent document should yield nil window, got %+v", window)
	}

	_ = store.Set(ctx, "facility-1", DocPreparationTimes, docstore.Fields{"Zaciatok": "08:00"})
	window, err = service.PreparationTimes(ctx, "facility-1")
	if err != nil {
		t.Fatalf("times: %v", err)
	}
	if window.Start != "08:00" || window.End != "23:59" {
		t.Fatalf("missing end bound should default, got %+v", window)
	}
}

func TestDailySanitationTextFallback(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	text, err := service.DailySanitationText(ctx, "facility-1")
	if err != nil || text != "" {
		t.Fatalf("absent document: got %q, %v", text, err)
	}

	// Legacy field only.
	_ = store.Set(ctx, "facility-1", DocDailySanitationText, docstore.Fields{"sadsa": "legacy checklist"})
	text, err = service.DailySanitationText(ctx, "facility-1")
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if text != "legacy checklist" {
		t.Fatalf("legacy fallback: got %q", text)
	}

	// Canonical field wins over legacy.
	_ = store.Set(ctx, "facility-1", DocDailySanitationText, docstore.Fields{"text": "current checklist", "sadsa": "legacy checklist"})
	text, _ = service.DailySanitationText(ctx, "facility-1")
	if text != "current checklist" {
		t.Fatalf("canonical field must win, got %q", text)
	}
}
