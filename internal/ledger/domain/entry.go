package ledger

import (
	"strconv"

	"github.com/shopspring/decimal"

	"facilityops/internal/docstore"
)

// DateLayout is the wire format of entry dates. Zero-padded ISO dates sort
// correctly under plain string comparison, which the repository and the gap
// analyzer rely on.
const DateLayout = "2006-01-02"

// DisplayDateLayout is the human-facing date format used in exports and
// missing-day listings.
const DisplayDateLayout = "02.01.2006"

// Entry is one day's VAT declaration for one facility. Field names follow
// the deployed wire format consumed by the tablet client.
type Entry struct {
	Date          string  `json:"datum"`
	Base5         float64 `json:"dph5Zaklad"`
	Tax5          float64 `json:"dph5Dan"`
	Base19        float64 `json:"dph19Zaklad"`
	Tax19         float64 `json:"dph19Dan"`
	Base0         float64 `json:"dph0Zaklad"`
	Base23        float64 `json:"dph23Zaklad"`
	Tax23         float64 `json:"dph23Dan"`
	CreditCard    float64 `json:"kreditnaKarta"`
	GrandTotal    float64 `json:"trzbaSpolu"`
	FacilityLabel string  `json:"prevadzka,omitempty"`
	ReferenceCode string  `json:"dkp,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

// ComponentSum returns the sum of the seven base/tax component fields
// rounded to 2 decimal places. CreditCard is not a component.
func (e Entry) ComponentSum() float64 {
	sum := decimal.NewFromFloat(e.Base5).
		Add(decimal.NewFromFloat(e.Tax5)).
		Add(decimal.NewFromFloat(e.Base19)).
		Add(decimal.NewFromFloat(e.Tax19)).
		Add(decimal.NewFromFloat(e.Base0)).
		Add(decimal.NewFromFloat(e.Base23)).
		Add(decimal.NewFromFloat(e.Tax23))
	f, _ := sum.Round(2).Float64()
	return f
}

// EntryFromFields decodes a stored entry map. Absent or unparseable numeric
// fields coerce to zero; they are never a reason to reject an entry.
func EntryFromFields(fields map[string]any) Entry {
	return Entry{
		Date:          stringField(fields, "datum"),
		Base5:         numericField(fields, "dph5Zaklad"),
		Tax5:          numericField(fields, "dph5Dan"),
		Base19:        numericField(fields, "dph19Zaklad"),
		Tax19:         numericField(fields, "dph19Dan"),
		Base0:         numericField(fields, "dph0Zaklad"),
		Base23:        numericField(fields, "dph23Zaklad"),
		Tax23:         numericField(fields, "dph23Dan"),
		CreditCard:    numericField(fields, "kreditnaKarta"),
		GrandTotal:    numericField(fields, "trzbaSpolu"),
		FacilityLabel: stringField(fields, "prevadzka"),
		ReferenceCode: stringField(fields, "dkp"),
		CreatedAt:     stringField(fields, "createdAt"),
	}
}

// Fields encodes the entry for storage.
func (e Entry) Fields() docstore.Fields {
	fields := docstore.Fields{
		"datum":         e.Date,
		"dph5Zaklad":    e.Base5,
		"dph5Dan":       e.Tax5,
		"dph19Zaklad":   e.Base19,
		"dph19Dan":      e.Tax19,
		"dph0Zaklad":    e.Base0,
		"dph23Zaklad":   e.Base23,
		"dph23Dan":      e.Tax23,
		"kreditnaKarta": e.CreditCard,
		"trzbaSpolu":    e.GrandTotal,
	}
	if e.FacilityLabel != "" {
		fields["prevadzka"] = e.FacilityLabel
	}
	if e.ReferenceCode != "" {
		fields["dkp"] = e.ReferenceCode
	}
	if e.CreatedAt != "" {
		fields["createdAt"] = e.CreatedAt
	}
	return fields
}

// EntriesFromDocument decodes a facility ledger document into entries.
func EntriesFromDocument(doc *docstore.Document) []Entry {
	raw := docstore.Entries(doc)
	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entries = append(entries, EntryFromFields(fields))
	}
	return entries
}

// EntriesFields encodes entries as the ledger document's array field.
func EntriesFields(entries []Entry) docstore.Fields {
	list := make([]any, 0, len(entries))
	for _, entry := range entries {
		list = append(list, map[string]any(entry.Fields()))
	}
	return docstore.Fields{docstore.EntriesField: list}
}

func numericField(fields map[string]any, key string) float64 {
	raw, ok := fields[key]
	if !ok {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func stringField(fields map[string]any, key string) string {
	v, _ := fields[key].(string)
	return v
}
