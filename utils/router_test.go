package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS_SimpleRequest(t *testing.T) {
	handler := CORS(NewRouter())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestCORS_PreflightForWriteRoute(t *testing.T) {
	// A POST-only route: without the outer CORS wrapper, an OPTIONS
	// request here would be a 405 from the router's method matching.
	router := NewRouter()
	router.HandleFunc("/api/shows", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}).Methods(http.MethodPost)
	handler := CORS(router)

	req := httptest.NewRequest(http.MethodOptions, "/api/shows", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("expected Access-Control-Allow-Methods to be set")
	}
}

func TestCORS_PreflightDoesNotReachHandler(t *testing.T) {
	router := NewRouter()
	called := false
	router.HandleFunc("/api/shows", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	handler := CORS(router)

	req := httptest.NewRequest(http.MethodOptions, "/api/shows", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Error("preflight must be answered by the middleware, not the route")
	}
}
