package shopping

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"facilityops/internal/docstore"
)

// Handler serves the shopping list APIs.
type Handler struct {
	service *Service
}

// NewHandler constructs a handler.
func NewHandler(service *Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("shopping handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP dispatches shopping list routes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/api/shopping-lists/facilities":
		h.handleFacilities(w, r, PartitionLists)
	case path == "/api/temp-shopping-lists/facilities":
		h.handleFacilities(w, r, PartitionTempLists)
	case strings.HasPrefix(path, "/api/temp-shopping-lists/"):
		h.handleTempItems(w, r, strings.TrimPrefix(path, "/api/temp-shopping-lists/"))
	case strings.HasPrefix(path, "/api/shopping-lists/"):
		h.handleLists(w, r, strings.TrimPrefix(path, "/api/shopping-lists/"))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleFacilities(w http.ResponseWriter, r *http.Request, partition string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	facilities, err := h.service.Facilities(r.Context(), partition)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	// Wire format is id -> display name; document ids double as names.
	byID := make(map[string]string, len(facilities))
	for _, facility := range facilities {
		byID[facility] = facility
	}
	respondJSON(w, map[string]any{"facilities": byID})
}

func (h *Handler) handleLists(w http.ResponseWriter, r *http.Request, rest string) {
	facilityID, isImport := strings.CutSuffix(rest, "/import")
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	switch {
	case r.Method == http.MethodGet && !isImport:
		items, err := h.service.Items(r.Context(), PartitionLists, facilityID)
		if err != nil {
			respondError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		respondJSON(w, map[string]any{"items": items})
	case r.Method == http.MethodPost:
		// Import replaces all existing items; a plain save has the same
		// overwrite semantics.
		h.handleSave(w, r, facilityID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request, facilityID string) {
	var req struct {
		Date  string `json:"date"`
		Items any    `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Items == nil {
		respondError(w, http.StatusBadRequest, "invalid items data")
		return
	}
	fields := docstore.Fields{"items": req.Items}
	if req.Date != "" {
		fields["date"] = req.Date
	}
	if err := h.service.Save(r.Context(), facilityID, fields); err != nil {
		respondError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	respondJSON(w, map[string]any{"message": "items saved", "items": req.Items})
}

func (h *Handler) handleTempItems(w http.ResponseWriter, r *http.Request, facilityID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !validFacilityID(facilityID) {
		respondError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	items, err := h.service.Items(r.Context(), PartitionTempLists, facilityID)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	respondJSON(w, map[string]any{"items": items})
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
