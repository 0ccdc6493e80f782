package records

import (
	"context"
	"fmt"
	"strconv"

	"facilityops/internal/docstore"
)

// TemperatureEntry is one fridge reading. A fridge is measured twice a day;
// resubmitting the same (date, fridge, period) replaces the earlier reading.
type TemperatureEntry struct {
	FridgeNumber string `json:"fridgeNumber"`
	Temperature  string `json:"temperature"`
	Date         string `json:"date"`
	Period       string `json:"period"`
}

// TemperatureConfig is the per-facility measurement setup.
type TemperatureConfig struct {
	FridgeCount int              `json:"fridgeCount"`
	Range       TemperatureRange `json:"range"`
}

// TemperatureRange is the acceptable reading interval.
type TemperatureRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// fridgeCountFields is the accepted schema for the fridge count document,
// checked in precedence order.
var fridgeCountFields = []string{"pocet", "Pocet", "count"}

// SaveTemperature upserts a reading keyed by (date, fridge, period). The
// write is conditional on the document version seen at read time.
func (s *Service) SaveTemperature(ctx context.Context, facilityID string, entry TemperatureEntry) error {
	if facilityID == "" {
		return ErrEmptyFacilityID
	}
	doc, err := s.store.Get(ctx, facilityID, DocTemperatures)
	if err != nil {
		return fmt.Errorf("records: load %s/%s: %w", facilityID, DocTemperatures, err)
	}

	entries := docstore.Entries(doc)
	replaced := false
	for i, item := range entries {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		date, _ := fields["date"].(string)
		fridge, _ := fields["fridgeNumber"].(string)
		period, _ := fields["period"].(string)
		if date == entry.Date && fridge == entry.FridgeNumber && period == entry.Period {
			entries[i] = entryFields(entry)
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entryFields(entry))
	}

	var version int64
	if doc != nil {
		version = doc.Version
	}
	fields := docstore.Fields{docstore.EntriesField: entries}
	if err := s.store.SetIfVersion(ctx, facilityID, DocTemperatures, fields, version); err != nil {
		return fmt.Errorf("records: save %s/%s: %w", facilityID, DocTemperatures, err)
	}
	return nil
}

// TemperatureConfigFor resolves the facility's fridge count and reading
// range. The count is read from the facility document first, then from the
// Global fallback; within a document the first matching schema field wins.
func (s *Service) TemperatureConfigFor(ctx context.Context, facilityID string) (TemperatureConfig, error) {
	cfg := TemperatureConfig{Range: TemperatureRange{Start: 0, End: 10}}
	if facilityID == "" {
		return cfg, ErrEmptyFacilityID
	}

	count, err := s.fridgeCount(ctx, facilityID)
	if err != nil {
		return cfg, err
	}
	if count == 0 {
		count, err = s.fridgeCount(ctx, docstore.GlobalPartition)
		if err != nil {
			return cfg, err
		}
	}
	cfg.FridgeCount = count

	doc, err := s.store.Get(ctx, facilityID, DocTemperatureRange)
	if err != nil {
		return cfg, fmt.Errorf("records: load %s/%s: %w", facilityID, DocTemperatureRange, err)
	}
	if doc != nil {
		if start, ok := intField(doc.Fields, "Zaciatok"); ok {
			cfg.Range.Start = start
		}
		if end, ok := intField(doc.Fields, "Koniec"); ok {
			cfg.Range.End = end
		}
	}
	return cfg, nil
}

func (s *Service) fridgeCount(ctx context.Context, partition string) (int, error) {
	doc, err := s.store.Get(ctx, partition, DocFridgeCount)
	if err != nil {
		return 0, fmt.Errorf("records: load %s/%s: %w", partition, DocFridgeCount, err)
	}
	if doc == nil {
		return 0, nil
	}
	for _, field := range fridgeCountFields {
		if count, ok := intField(doc.Fields, field); ok {
			return count, nil
		}
	}
	return 0, nil
}

func entryFields(entry TemperatureEntry) map[string]any {
	return map[string]any{
		"fridgeNumber": entry.FridgeNumber,
		"temperature":  entry.Temperature,
		"date":         entry.Date,
		"period":       entry.Period,
	}
}

func intField(fields docstore.Fields, key string) (int, bool) {
	raw, ok := fields[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
