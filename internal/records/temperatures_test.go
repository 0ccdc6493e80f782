package records

import (
	"context"
	"testing"

	"facilityops/internal/docstore"
)

func TestSaveTemperatureUpserts(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	morning := TemperatureEntry{FridgeNumber: "1", Temperature: "4.5", Date: "2026-03-01", Period: "morning"}
	if err := service.SaveTemperature(ctx, "facility-1", morning); err != nil {
		t.Fatalf("save: %v", err)
	}
	evening := TemperatureEntry{FridgeNumber: "1", Temperature: "5.0", Date: "2026-03-01", Period: "evening"}
	if err := service.SaveTemperature(ctx, "facility-1", evening); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := service.History(ctx, "facility-1", DocTemperatures)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("distinct periods must both be kept, got %d", len(entries))
	}

	// Same key again replaces instead of appending.
	corrected := TemperatureEntry{FridgeNumber: "1", Temperature: "4.0", Date: "2026-03-01", Period: "morning"}
	if err := service.SaveTemperature(ctx, "facility-1", corrected); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, _ = service.History(ctx, "facility-1", DocTemperatures)
	if len(entries) != 2 {
		t.Fatalf("resubmission must replace, got %d entries", len(entries))
	}
	for _, entry := range entries {
		if entry["period"] == "morning" && entry["temperature"] != "4.0" {
			t.Fatalf("morning reading not replaced: %v", entry)
		}
	}
}

func TestTemperatureConfigDefaults(t *testing.T) {
	service, _ := newTestService(t)

	cfg, err := service.TemperatureConfigFor(context.Background(), "facility-1")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.FridgeCount != 0 {
		t.Fatalf("fridge count: got %d", cfg.FridgeCount)
	}
	if cfg.Range.Start != 0 || cfg.Range.End != 10 {
		t.Fatalf("default range: got %+v", cfg.Range)
	}
}

func TestTemperatureConfigFieldPrecedence(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	_ = store.Set(ctx, "facility-1", DocFridgeCount, docstore.Fields{"count": 3, "pocet": 5})

	cfg, err := service.TemperatureConfigFor(ctx, "facility-1")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.FridgeCount != 5 {
		t.Fatalf("pocet must win over count, got %d", cfg.FridgeCount)
	}
}

func TestTemperatureConfigGlobalFallback(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	_ = store.Set(ctx, docstore.GlobalPartition, DocFridgeCount, docstore.Fields{"pocet": 4})

	cfg, err := service.TemperatureConfigFor(ctx, "facility-1")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.FridgeCount != 4 {
		t.Fatalf("global fallback: got %d", cfg.FridgeCount)
	}

	// A facility document overrides the global one.
	_ = store.Set(ctx, "facility-1", DocFridgeCount, docstore.Fields{"pocet": 2})
	cfg, _ = service.TemperatureConfigFor(ctx, "facility-1")
	if cfg.FridgeCount != 2 {
		t.Fatalf("facility document must win, got %d", cfg.FridgeCount)
	}
}

func TestTemperatureConfigRange(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	_ = store.Set(ctx, "facility-1", DocTemperatureRange, docstore.Fields{"Zaciatok": -2, "Koniec": 8})

	cfg, err := service.TemperatureConfigFor(ctx, "facility-1")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Range.Start != -2 || cfg.Range.End != 8 {
		t.Fatalf("range: got %+v", cfg.Range)
	}
}
