package facility

import (
	"encoding/json"
	"net/http"
)

// Handler serves the facility directory and device timer lookups.
type Handler struct {
	directory *Directory
}

// NewHandler constructs a handler.
func NewHandler(directory *Directory) *Handler {
	return &Handler{directory: directory}
}

// ServeHTTP dispatches /api/facilities and /api/timer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/facilities":
		facilities, err := h.directory.Facilities(r.Context())
		if err != nil {
			http.Error(w, `{"error":"store unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"facilities": facilities})
	case "/api/timer":
		minutes, err := h.directory.TimerMinutes(r.Context())
		if err != nil {
			http.Error(w, `{"error":"store unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"minutes": minutes})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
