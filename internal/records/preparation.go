package records

import (
	"context"
	"fmt"
	"sort"
)

// TimeRange is the daily window in which preparation entries are accepted.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PreparationItems returns the configured preparation item names. The
// document holds one string field per item (item1, item2, ...); values are
// returned in field-name order.
func (s *Service) PreparationItems(ctx context.Context, facilityID string) ([]string, error) {
	if facilityID == "" {
		return nil, ErrEmptyFacilityID
	}
	doc, err := s.store.Get(ctx, facilityID, DocPreparationItems)
	if err != nil {
		return nil, fmt.Errorf("records: load %s/%s: %w", facilityID, DocPreparationItems, err)
	}
	if doc == nil {
		return nil, nil
	}
	keys := make([]string, 0, len(doc.Fields))
	for key, value := range doc.Fields {
		if _, ok := value.(string); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	items := make([]string, 0, len(keys))
	for _, key := range keys {
		items = append(items, doc.Fields[key].(string))
	}
	return items, nil
}

// PreparationTimes returns the configured time window, or nil when the
// facility has none. Missing bounds default to the whole day.
func (s *Service) PreparationTimes(ctx context.Context, facilityID string) (*TimeRange, error) {
	if facilityID == "" {
		return nil, ErrEmptyFacilityID
	}
	doc, err := s.store.Get(ctx, facilityID, DocPreparationTimes)
	if err != nil {
		return nil, fmt.Errorf("records: load %s/%s: %w", facilityID, DocPreparationTimes, err)
	}
	if doc == nil {
		return nil, nil
	}
	window := &TimeRange{Start: "00:00", End: "23:59"}
	if start, ok := doc.Fields["Zaciatok"].(string); ok && start != "" {
		window.Start = start
	}
	if end, ok := doc.Fields["Koniec"].(string); ok && end != "" {
		window.End = end
	}
	return window, nil
}

// DailySanitationText returns the facility's daily sanitation checklist
// text. The canonical field is "text"; "sadsa" is the field name found in
// legacy documents and is read as a fallback.
func (s *Service) DailySanitationText(ctx context.Context, facilityID string) (string, error) {
	text, err := s.Text(ctx, facilityID, DocDailySanitationText, "text")
	if err != nil || text != "" {
		return text, err
	}
	return s.Text(ctx, facilityID, DocDailySanitationText, "sadsa")
}
