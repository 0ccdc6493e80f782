package export

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	ledger "facilityops/internal/ledger/domain"
)

// Clock abstracts time for deterministic file naming in tests.
type Clock interface {
	Now() time.Time
}

// FTPUploader ships rendered export documents to the remote FTP directory.
// Each upload opens a fresh connection and always closes it, on success and
// failure alike.
type FTPUploader struct {
	cfg   Config
	clock Clock
}

// NewFTPUploader constructs an uploader.
func NewFTPUploader(cfg Config, clock Clock) (*FTPUploader, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("ftp uploader: empty host")
	}
	if clock == nil {
		return nil, fmt.Errorf("ftp uploader: nil clock")
	}
	return &FTPUploader{cfg: cfg, clock: clock}, nil
}

// Upload stores the document under a collision-free name derived from the
// facility and the current month, and returns that name. Existing exports
// are never overwritten; a taken name gets an incrementing numeric suffix.
func (u *FTPUploader) Upload(ctx context.Context, facilityID string, document []byte) (string, error) {
	addr := net.JoinHostPort(u.cfg.Host, strconv.Itoa(u.cfg.Port))
	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(u.cfg.DialTimeout))
	if err != nil {
		return "", fmt.Errorf("ftp uploader: dial %s: %w", addr, err)
	}
	defer func() {
		_ = conn.Quit()
	}()

	if err := conn.Login(u.cfg.User, u.cfg.Password); err != nil {
		return "", fmt.Errorf("ftp uploader: login: %w", err)
	}

	listing, err := conn.List(u.cfg.Directory)
	if err != nil {
		return "", fmt.Errorf("ftp uploader: list %s: %w", u.cfg.Directory, err)
	}
	existing := make([]string, 0, len(listing))
	for _, item := range listing {
		existing = append(existing, item.Name)
	}

	monthName := ledger.MonthName(u.clock.Now().Month())
	fileName := ResolveFileName(BaseFileName(facilityID, monthName), existing)

	remotePath := u.cfg.Directory + "/" + fileName
	if err := conn.Stor(remotePath, bytes.NewReader(document)); err != nil {
		return "", fmt.Errorf("ftp uploader: store %s: %w", remotePath, err)
	}
	return fileName, nil
}

// BaseFileName builds the canonical export file name for a facility month.
func BaseFileName(facilityID, monthName string) string {
	return fmt.Sprintf("DPH_%s_%s.xlsx", facilityID, monthName)
}

// ResolveFileName returns base when it is free in the remote directory,
// otherwise the first suffixed variant (_1, _2, ...) that is.
func ResolveFileName(base string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		taken[name] = struct{}{}
	}
	if _, ok := taken[base]; !ok {
		return base
	}
	stem := strings.TrimSuffix(base, ".xlsx")
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d.xlsx", stem, counter)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
