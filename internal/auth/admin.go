package auth

import (
	"context"
	"errors"

	"facilityops/internal/docstore"
)

const (
	adminCodeDocument = "adminCode"
	adminCodeField    = "adminCode"
)

// AdminVerifier checks submitted codes against the shared admin code stored
// in the Global partition. This is the only authentication the devices use;
// there are no per-user accounts.
type AdminVerifier struct {
	store docstore.Store
}

// NewAdminVerifier constructs a verifier.
func NewAdminVerifier(store docstore.Store) (*AdminVerifier, error) {
	if store == nil {
		return nil, errors.New("auth: nil store")
	}
	return &AdminVerifier{store: store}, nil
}

// Verify reports whether code matches the stored admin code. A missing
// document or field never matches.
func (v *AdminVerifier) Verify(ctx context.Context, code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	doc, err := v.store.Get(ctx, docstore.GlobalPartition, adminCodeDocument)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}
	stored, _ := doc.Fields[adminCodeField].(string)
	return stored != "" && stored == code, nil
}
