package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"facilityops/internal/docstore"
	"facilityops/internal/docstore/memory"
)

func newVerifyHarness(t *testing.T) *VerifyHandler {
	t.Helper()
	store := memory.NewStore()
	if err := store.Set(context.Background(), docstore.GlobalPartition, "adminCode", docstore.Fields{"adminCode": "4242"}); err != nil {
		t.Fatalf("seed admin code: %v", err)
	}
	verifier, err := NewAdminVerifier(store)
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	return NewVerifyHandler(verifier, []byte("test-secret"))
}

func TestVerifyAdminCode(t *testing.T) {
	handler := newVerifyHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/api/verify-admin-code", strings.NewReader(`{"code":"4242"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !payload.Success || payload.Token == "" {
		t.Fatalf("payload: %+v", payload)
	}
	if _, err := ParseSessionToken(payload.Token, []byte("test-secret")); err != nil {
		t.Fatalf("issued token must validate: %v", err)
	}
}

func TestVerifyAdminCodeRejectsWrongCode(t *testing.T) {
	handler := newVerifyHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/api/verify-admin-code", strings.NewReader(`{"code":"0000"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d", resp.Code)
	}
}

func TestVerifyAdminCodeRejectsEmptyBody(t *testing.T) {
	handler := newVerifyHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/api/verify-admin-code", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", resp.Code)
	}
}

func TestRequireSession(t *testing.T) {
	secret := []byte("test-secret")
	middleware := NewRequireSession(secret)
	protected := middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/audit", nil)
	resp := httptest.NewRecorder()
	protected.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: got %d", resp.Code)
	}

	token, err := IssueSessionToken(secret, time.Now().UTC())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/audit", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	protected.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("valid token: got %d", resp.Code)
	}
}
