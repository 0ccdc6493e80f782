package auth

import (
	"encoding/json"
	"net/http"
	"time"
)

// VerifyHandler serves the shared admin code check and issues a session
// token on success.
type VerifyHandler struct {
	verifier *AdminVerifier
	secret   []byte
}

// NewVerifyHandler constructs a handler.
func NewVerifyHandler(verifier *AdminVerifier, secret []byte) *VerifyHandler {
	return &VerifyHandler{verifier: verifier, secret: secret}
}

// ServeHTTP handles POST /api/verify-admin-code.
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		http.Error(w, `{"error":"invalid code"}`, http.StatusBadRequest)
		return
	}
	ok, err := h.verifier.Verify(r.Context(), req.Code)
	if err != nil {
		http.Error(w, `{"error":"verification failed"}`, http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, `{"error":"invalid admin code"}`, http.StatusUnauthorized)
		return
	}
	token, err := IssueSessionToken(h.secret, time.Now().UTC())
	if err != nil {
		http.Error(w, `{"error":"verification failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "token": token})
}
