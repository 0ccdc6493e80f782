package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"facilityops/internal/audit"
	"facilityops/internal/docstore"
	ledgerapp "facilityops/internal/ledger/application"
	ledger "facilityops/internal/ledger/domain"
	"facilityops/internal/ledger/interfaces"
)

// Handler serves the VAT ledger API under /api/dph/.
type Handler struct {
	service     *ledgerapp.Service
	exporter    *ledgerapp.ExportService
	clock       ledgerapp.Clock
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *ledgerapp.Service, exporter *ledgerapp.ExportService, clock ledgerapp.Clock, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("ledger handler: nil service")
	}
	if exporter == nil {
		return nil, errors.New("ledger handler: nil exporter")
	}
	if clock == nil {
		return nil, errors.New("ledger handler: nil clock")
	}
	return &Handler{service: service, exporter: exporter, clock: clock, auditLogger: auditLogger}, nil
}

// ServeHTTP dispatches ledger routes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/api/dph/history/"):
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleHistory(w, r, strings.TrimPrefix(path, "/api/dph/history/"))
	case strings.HasPrefix(path, "/api/dph/export/"):
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleExport(w, r, strings.TrimPrefix(path, "/api/dph/export/"))
	case strings.HasPrefix(path, "/api/dph/report/"):
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleReport(w, r, strings.TrimPrefix(path, "/api/dph/report/"))
	case strings.HasPrefix(path, "/api/dph/"):
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleSubmit(w, r, strings.TrimPrefix(path, "/api/dph/"))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request, facilityID string) {
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	entries, err := h.service.History(r.Context(), facilityID)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"entries": entries})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request, facilityID string) {
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	// Decode into a field map so absent or mistyped numeric fields coerce
	// to zero instead of failing the request.
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	entry := ledger.EntryFromFields(fields)
	if err := h.service.Submit(r.Context(), facilityID, entry); err != nil {
		respondLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	h.logAudit(r, facilityID, "dph.submit", map[string]any{"date": entry.Date})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, facilityID string) {
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	var req struct {
		BypassGapCheck bool `json:"bypassGapCheck"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	fileName, err := h.exporter.Export(r.Context(), facilityID, req.BypassGapCheck)
	if err != nil {
		var gaps *ledger.GapsError
		switch {
		case errors.Is(err, ledger.ErrNoData):
			respondError(w, http.StatusBadRequest, "no data")
		case errors.As(err, &gaps):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error":       "missing days",
				"missingDays": gaps.MissingDays,
			})
		case errors.Is(err, docstore.ErrUnavailable), errors.Is(err, docstore.ErrVersionConflict):
			respondError(w, http.StatusServiceUnavailable, "store unavailable")
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "fileName": fileName})
	h.logAudit(r, facilityID, "dph.export", map[string]any{
		"fileName": fileName,
		"bypass":   req.BypassGapCheck,
	})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request, facilityID string) {
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	entries, err := h.service.History(r.Context(), facilityID)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	if len(entries) == 0 {
		respondError(w, http.StatusBadRequest, "no data")
		return
	}
	data, err := interfaces.BuildLedgerPDF(facilityID, entries, h.clock.Now())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "report error")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) logAudit(r *http.Request, facilityID, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Action:       action,
		FacilityID:   facilityID,
		ResourceType: "ledger",
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
		CreatedAt:    time.Now().UTC(),
	})
}

func validFacilityID(facilityID string) bool {
	return facilityID != "" && facilityID != "null" && facilityID != "undefined" &&
		!strings.Contains(facilityID, "/")
}

func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrTotalMismatch):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrEmptyFacilityID), errors.Is(err, ledger.ErrEmptyDate):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, docstore.ErrUnavailable), errors.Is(err, docstore.ErrVersionConflict):
		respondError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		respondError(w, http.StatusInternalServerError, "server error")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
