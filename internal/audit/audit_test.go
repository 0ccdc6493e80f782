package audit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	first := NewID()
	second := NewID()
	if !strings.HasPrefix(first, "audit-") {
		t.Fatalf("id prefix: got %q", first)
	}
	if first == second {
		t.Fatal("ids must be unique")
	}
}

func TestDigestJSON(t *testing.T) {
	if DigestJSON(nil) != "" {
		t.Fatal("empty payload should have empty digest")
	}
	a := DigestJSON([]byte(`{"date":"2026-03-01"}`))
	b := DigestJSON([]byte(`{"date":"2026-03-01"}`))
	c := DigestJSON([]byte(`{"date":"2026-03-02"}`))
	if a != b {
		t.Fatal("digest must be deterministic")
	}
	if a == c {
		t.Fatal("different payloads must differ")
	}
	if len(a) != 64 {
		t.Fatalf("sha256 hex length: got %d", len(a))
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:4242"
	if got := ClientIP(req); got != "10.0.0.1" {
		t.Fatalf("remote addr: got %q", got)
	}

	req.Header.Set("X-Real-IP", "203.0.113.9")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Fatalf("x-real-ip: got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	if got := ClientIP(req); got != "198.51.100.7" {
		t.Fatalf("x-forwarded-for: got %q", got)
	}
}
