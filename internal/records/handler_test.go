package records

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newHandlerHarness(t *testing.T) (*Handler, *Service) {
	t.Helper()
	service, _ := newTestService(t)
	handler, err := NewHandler(service)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler, service
}

func TestBioWasteAppendFiltersFields(t *testing.T) {
	handler, service := newHandlerHarness(t)

	body := `{"date":"2026-03-01","amount":"2","unit":"kg","injected":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bio-waste/facility-1", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", resp.Code, resp.Body.String())
	}
	entries, err := service.History(context.Background(), "facility-1", DocBioWaste)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if _, ok := entries[0]["injected"]; ok {
		t.Fatalf("unaccepted fields must be dropped: %v", entries[0])
	}
	if entries[0]["unit"] != "kg" {
		t.Fatalf("accepted field lost: %v", entries[0])
	}
}

func TestTemperatureEndpointRoundTrip(t *testing.T) {
	handler, _ := newHandlerHarness(t)

	body := `{"fridgeNumber":"1","temperature":"4.5","date":"2026-03-01","period":"morning"}`
	req := httptest.NewRequest(http.MethodPost, "/api/temperatures/facility-1", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("save status: got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/temperatures/facility-1", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("list status: got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"temperature":"4.5"`) {
		t.Fatalf("body: %s", resp.Body.String())
	}
}

func TestRecordRoutesRejectBadFacility(t *testing.T) {
	handler, _ := newHandlerHarness(t)

	for _, path := range []string{
		"/api/bio-waste/null",
		"/api/temperatures/config/undefined",
		"/api/daily-sanitation/text/null",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: got %d", path, resp.Code)
		}
	}
}
