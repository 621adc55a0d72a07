package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhouzirui/items-api/backend/internal/service/events"
	"github.com/zhouzirui/items-api/backend/internal/service/items"
	"github.com/zhouzirui/items-api/backend/internal/storage"
)

func TestRouterServesItems(t *testing.T) {
	hub := events.NewHub(1)
	router := NewRouter(items.NewService(storage.NewMemoryBackend(nil), hub), hub)

	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewBufferString(`{"name":"popsicle","price":1.45}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/items/popsicle", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS header, got %q", got)
	}
}

func TestRouterPreflight(t *testing.T) {
	router := NewRouter(items.NewService(storage.NewMemoryBackend(nil), nil), nil)

	req := httptest.NewRequest(http.MethodOptions, "/items/popsicle", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := NewRouter(items.NewService(storage.NewMemoryBackend(nil), nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if body := resp.Body.String(); !bytes.Contains([]byte(body), []byte(`"error"`)) {
		t.Fatalf("expected JSON error body, got %s", body)
	}
}

func TestRouterWithoutHubSkipsFeed(t *testing.T) {
	router := NewRouter(items.NewService(storage.NewMemoryBackend(nil), nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
