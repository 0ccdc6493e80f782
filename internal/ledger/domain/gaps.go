package ledger

import "time"

// FindMissingDays computes the days of the export month that have no
// recorded entry, formatted for display in ascending day order.
//
// The reference date is the lexicographically greatest entry date; its
// calendar month defines month-end completeness. An empty ledger has
// nothing to check and reports no gaps.
func FindMissingDays(entries []Entry) []string {
	if len(entries) == 0 {
		return nil
	}

	reference := entries[0].Date
	recorded := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		recorded[entry.Date] = struct{}{}
		if entry.Date > reference {
			reference = entry.Date
		}
	}

	refDate, err := time.Parse(DateLayout, reference)
	if err != nil {
		return nil
	}

	year, month := refDate.Year(), refDate.Month()
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	var missing []string
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if _, ok := recorded[date.Format(DateLayout)]; ok {
			continue
		}
		missing = append(missing, date.Format(DisplayDateLayout))
	}
	return missing
}
