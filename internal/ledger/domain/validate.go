package ledger

import "github.com/shopspring/decimal"

// Validate checks that the seven component fields sum to the declared grand
// total, both rounded to 2 decimal places. A pure guard with no side
// effects; it must run before any store interaction. Missing fields have
// already been coerced to zero and never fail validation on their own.
func Validate(entry Entry) error {
	declared, _ := decimal.NewFromFloat(entry.GrandTotal).Round(2).Float64()
	if entry.ComponentSum() != declared {
		return ErrTotalMismatch
	}
	return nil
}
