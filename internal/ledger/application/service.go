package application

import (
	"context"
	"errors"
	"time"

	ledger "facilityops/internal/ledger/domain"
	"facilityops/internal/observability/metrics"
)

// Repository persists facility ledgers.
type Repository interface {
	List(ctx context.Context, facilityID string) ([]ledger.Entry, error)
	Upsert(ctx context.Context, facilityID string, entry ledger.Entry) error
	Clear(ctx context.Context, facilityID string) error
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// Service handles ledger entry submission and history.
type Service struct {
	repo  Repository
	clock Clock
}

// NewService constructs a service.
func NewService(repo Repository, clock Clock) (*Service, error) {
	if repo == nil {
		return nil, errors.New("ledger service: nil repo")
	}
	if clock == nil {
		return nil, errors.New("ledger service: nil clock")
	}
	return &Service{repo: repo, clock: clock}, nil
}

// Submit validates an entry and upserts it by date. Validation runs before
// any store interaction; a mismatching entry is never written.
func (s *Service) Submit(ctx context.Context, facilityID string, entry ledger.Entry) error {
	start := s.clock.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveLedgerSubmit(result, time.Since(start))
	}()

	if facilityID == "" {
		result = metrics.ResultError
		return ledger.ErrEmptyFacilityID
	}
	if entry.Date == "" {
		result = metrics.ResultError
		return ledger.ErrEmptyDate
	}
	if err := ledger.Validate(entry); err != nil {
		result = metrics.ResultError
		return err
	}
	if entry.CreatedAt == "" {
		entry.CreatedAt = s.clock.Now().UTC().Format(time.RFC3339)
	}
	if err := s.repo.Upsert(ctx, facilityID, entry); err != nil {
		result = metrics.ResultError
		return err
	}
	return nil
}

// History returns the facility's current entries; an absent ledger is an
// empty history, not an error.
func (s *Service) History(ctx context.Context, facilityID string) ([]ledger.Entry, error) {
	if facilityID == "" {
		return nil, ledger.ErrEmptyFacilityID
	}
	return s.repo.List(ctx, facilityID)
}
