package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	ledger "facilityops/internal/ledger/domain"
	"facilityops/internal/observability/metrics"
)

// Renderer turns entries into a spreadsheet document.
type Renderer interface {
	Render(facilityID string, entries []ledger.Entry, month time.Time) ([]byte, error)
}

// Uploader ships a rendered document to the remote file store and returns
// the final (collision-free) file name.
type Uploader interface {
	Upload(ctx context.Context, facilityID string, document []byte) (string, error)
}

// ExportService sequences the month-end export: gap check (optionally
// bypassed), render, upload, then clear. Clear runs strictly after the
// upload is acknowledged; any earlier failure leaves the ledger intact for
// retry.
type ExportService struct {
	repo     Repository
	renderer Renderer
	uploader Uploader
	clock    Clock
	logger   *log.Logger
}

// NewExportService constructs an export service.
func NewExportService(repo Repository, renderer Renderer, uploader Uploader, clock Clock, logger *log.Logger) (*ExportService, error) {
	if repo == nil {
		return nil, errors.New("export service: nil repo")
	}
	if renderer == nil {
		return nil, errors.New("export service: nil renderer")
	}
	if uploader == nil {
		return nil, errors.New("export service: nil uploader")
	}
	if clock == nil {
		return nil, errors.New("export service: nil clock")
	}
	if logger == nil {
		return nil, errors.New("export service: nil logger")
	}
	return &ExportService{repo: repo, renderer: renderer, uploader: uploader, clock: clock, logger: logger}, nil
}

// Export runs one export invocation and returns the remote file name.
//
// Outcomes: ledger.ErrNoData on an empty ledger, *ledger.GapsError when the
// export month is incomplete and the gap check is not bypassed, a wrapped
// transport error when the upload fails.
func (s *ExportService) Export(ctx context.Context, facilityID string, bypassGapCheck bool) (string, error) {
	start := s.clock.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveLedgerExport(result, time.Since(start))
	}()

	if facilityID == "" {
		result = metrics.ResultError
		return "", ledger.ErrEmptyFacilityID
	}

	entries, err := s.repo.List(ctx, facilityID)
	if err != nil {
		result = metrics.ResultError
		return "", err
	}
	if len(entries) == 0 {
		result = metrics.ResultError
		return "", ledger.ErrNoData
	}

	if !bypassGapCheck {
		if missing := ledger.FindMissingDays(entries); len(missing) > 0 {
			result = metrics.ResultError
			return "", &ledger.GapsError{MissingDays: missing}
		}
	}

	document, err := s.renderer.Render(facilityID, entries, s.clock.Now())
	if err != nil {
		result = metrics.ResultError
		return "", fmt.Errorf("export: render: %w", err)
	}

	uploadStart := s.clock.Now()
	fileName, err := s.uploader.Upload(ctx, facilityID, document)
	metricsResult := metrics.ResultSuccess
	if err != nil {
		metricsResult = metrics.ResultError
	}
	metrics.ObserveUpload(metricsResult, time.Since(uploadStart))
	if err != nil {
		result = metrics.ResultError
		return "", fmt.Errorf("export: upload: %w", err)
	}

	// Upload acknowledged; only now is it safe to reset the ledger. If the
	// clear fails the remote file stays and a re-export produces a suffixed
	// file name, never data loss.
	if err := s.repo.Clear(ctx, facilityID); err != nil {
		s.logger.Printf("export: ledger clear failed after upload of %s: %v", fileName, err)
		result = metrics.ResultError
		return "", err
	}

	s.logger.Printf("export: facility=%s file=%s entries=%d", facilityID, fileName, len(entries))
	return fileName, nil
}
