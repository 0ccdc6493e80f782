package ledger

import "time"

// slovakMonths indexes display month names by time.Month.
var slovakMonths = [...]string{
	time.January:   "január",
	time.February:  "február",
	time.March:     "marec",
	time.April:     "apríl",
	time.May:       "máj",
	time.June:      "jún",
	time.July:      "júl",
	time.August:    "august",
	time.September: "september",
	time.October:   "október",
	time.November:  "november",
	time.December:  "december",
}

// MonthName returns the Slovak display name of a month, used in export
// filenames and the export metadata row.
func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return slovakMonths[month]
}

// DisplayDate reformats a wire-format date for display. Dates that do not
// parse are returned unchanged rather than dropped.
func DisplayDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(DisplayDateLayout)
}
