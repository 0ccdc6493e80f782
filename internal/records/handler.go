package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"facilityops/internal/observability/metrics"
)

// Handler serves the dated-record APIs (bio waste, preparation, sanitation,
// temperatures).
type Handler struct {
	service *Service
}

// NewHandler constructs a handler.
func NewHandler(service *Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("records handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP dispatches record routes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/api/bio-waste/"):
		h.handleDated(w, r, strings.TrimPrefix(path, "/api/bio-waste/"), "bio-waste", DocBioWaste, []string{"date", "amount", "unit"})
	case strings.HasPrefix(path, "/api/preparation/items/"):
		h.handlePreparationItems(w, r, strings.TrimPrefix(path, "/api/preparation/items/"))
	case strings.HasPrefix(path, "/api/preparation/times/"):
		h.handlePreparationTimes(w, r, strings.TrimPrefix(path, "/api/preparation/times/"))
	case strings.HasPrefix(path, "/api/preparation/"):
		h.handleDated(w, r, strings.TrimPrefix(path, "/api/preparation/"), "preparation", DocPreparation, []string{"date", "time", "item"})
	case strings.HasPrefix(path, "/api/sanitation/"):
		h.handleDated(w, r, strings.TrimPrefix(path, "/api/sanitation/"), "sanitation", DocQuarterlySanitation, []string{"date"})
	case strings.HasPrefix(path, "/api/daily-sanitation/text/"):
		h.handleDailySanitationText(w, r, strings.TrimPrefix(path, "/api/daily-sanitation/text/"))
	case strings.HasPrefix(path, "/api/daily-sanitation/"):
		h.handleDated(w, r, strings.TrimPrefix(path, "/api/daily-sanitation/"), "daily-sanitation", DocDailySanitation, []string{"date", "text"})
	case strings.HasPrefix(path, "/api/temperatures/config/"):
		h.handleTemperatureConfig(w, r, strings.TrimPrefix(path, "/api/temperatures/config/"))
	case strings.HasPrefix(path, "/api/temperatures/"):
		h.handleTemperatures(w, r, strings.TrimPrefix(path, "/api/temperatures/"))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// handleDated serves the shared get/append contract: GET returns the
// entries array, POST appends one entry built from the accepted fields.
func (h *Handler) handleDated(w http.ResponseWriter, r *http.Request, facilityID, kind, document string, accepted []string) {
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		entries, err := h.service.History(r.Context(), facilityID, document)
		if err != nil {
			respondError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		respondJSON(w, map[string]any{"entries": entries})
	case http.MethodPost:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid json")
			return
		}
		entry := make(map[string]any, len(accepted))
		for _, field := range accepted {
			if value, ok := body[field]; ok {
				entry[field] = value
			}
		}
		if err := h.service.Append(r.Context(), facilityID, document, entry); err != nil {
			metrics.IncRecordSave(kind, metrics.ResultError)
			respondError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		metrics.IncRecordSave(kind, metrics.ResultSuccess)
		respondJSON(w, map[string]any{"success": true})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handlePreparationItems(w http.ResponseWriter, r *http.Request, facilityID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	items, err := h.service.PreparationItems(r.Context(), facilityID)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	if items == nil {
		items = []string{}
	}
	respondJSON(w, map[string]any{"items": items})
}

func (h *Handler) handlePreparationTimes(w http.ResponseWriter, r *http.Request, facilityID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	times, err := h.service.PreparationTimes(r.Context(), facilityID)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	respondJSON(w, map[string]any{"times": times})
}

func (h *Handler) handleDailySanitationText(w http.ResponseWriter, r *http.Request, facilityID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	text, err := h.service.DailySanitationText(r.Context(), facilityID)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	respondJSON(w, map[string]any{"text": text})
}

func (h *Handler) handleTemperatureConfig(w http.ResponseWriter, r *http.Request, facilityID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	cfg, err := h.service.TemperatureConfigFor(r.Context(), facilityID)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	respondJSON(w, cfg)
}

func (h *Handler) handleTemperatures(w http.ResponseWriter, r *http.Request, facilityID string) {
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		entries, err := h.service.History(r.Context(), facilityID, DocTemperatures)
		if err != nil {
			respondError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		respondJSON(w, map[string]any{"entries": entries})
	case http.MethodPost:
		var entry TemperatureEntry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			respondError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := h.service.SaveTemperature(r.Context(), facilityID, entry); err != nil {
			metrics.IncRecordSave("temperature", metrics.ResultError)
			respondError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		metrics.IncRecordSave("temperature", metrics.ResultSuccess)
		respondJSON(w, map[string]any{"success": true})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func validFacilityID(facilityID string) bool {
	return facilityID != "" && facilityID != "null" && facilityID != "undefined" &&
		!strings.Contains(facilityID, "/")
}

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
