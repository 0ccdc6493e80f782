package ledger

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{
			name: "components match total",
			entry: Entry{
				Date:       "2026-03-01",
				Base5:      10,
				Tax5:       0.5,
				GrandTotal: 10.5,
			},
		},
		{
			name: "declared total too high",
			entry: Entry{
				Date:       "2026-03-01",
				Base5:      10,
				Tax5:       0.5,
				GrandTotal: 11.0,
			},
			wantErr: true,
		},
		{
			name: "all seven components counted",
			entry: Entry{
				Date:       "2026-03-02",
				Base5:      100.10,
				Tax5:       5.01,
				Base19:     200.20,
				Tax19:      38.04,
				Base0:      15,
				Base23:     50.50,
				Tax23:      11.62,
				GrandTotal: 420.47,
			},
		},
		{
			name: "credit card is not a component",
			entry: Entry{
				Date:       "2026-03-03",
				Base19:     100,
				Tax19:      19,
				CreditCard: 40,
				GrandTotal: 119,
			},
		},
		{
			name: "float accumulation rounds away",
			entry: Entry{
				Date:       "2026-03-04",
				Base5:      0.1,
				Tax5:       0.2,
				GrandTotal: 0.3,
			},
		},
		{
			name: "zero entry",
			entry: Entry{
				Date: "2026-03-05",
			},
		},
		{
			name: "off by a cent",
			entry: Entry{
				Date:       "2026-03-06",
				Base19:     100,
				Tax19:      19,
				GrandTotal: 119.01,
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.entry)
			if tc.wantErr {
				if !errors.Is(err, ErrTotalMismatch) {
					t.Fatalf("expected ErrTotalMismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEntryFromFieldsCoercion(t *testing.T) {
	entry := EntryFromFields(map[string]any{
		"datum":       "2026-03-01",
		"dph5Zaklad":  float64(10),
		"dph5Dan":     "0.5",
		"dph19Zaklad": "not a number",
		"trzbaSpolu":  10.5,
		"dkp":         "1234567890",
	})

	if entry.Date != "2026-03-01" {
		t.Fatalf("date: got %q", entry.Date)
	}
	if entry.Base5 != 10 {
		t.Fatalf("base5: got %v", entry.Base5)
	}
	if entry.Tax5 != 0.5 {
		t.Fatalf("tax5 string coercion: got %v", entry.Tax5)
	}
	if entry.Base19 != 0 {
		t.Fatalf("unparseable field should coerce to zero, got %v", entry.Base19)
	}
	if entry.Base23 != 0 {
		t.Fatalf("absent field should coerce to zero, got %v", entry.Base23)
	}
	if entry.ReferenceCode != "1234567890" {
		t.Fatalf("dkp: got %q", entry.ReferenceCode)
	}
	if err := Validate(entry); err != nil {
		t.Fatalf("coerced entry should validate: %v", err)
	}
}
