package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/unisphere-app/backend/internal/auth"
	"github.com/unisphere-app/backend/internal/middleware"
)

func testRouter(t *testing.T) *mux.Router {
	t.Helper()
	tokens := auth.NewTokenManagerWithSecret("test_secret", time.Hour)
	h := New(nil, tokens)
	r := mux.NewRouter()
	gate := &middleware.AuthGate{Tokens: tokens}
	Register(h, r, gate, middleware.NewPlanEnforcer())
	return r
}

func TestRoutes_HealthPublic(t *testing.T) {
	r := testRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}

func TestRoutes_RegisterPublic(t *testing.T) {
	r := testRouter(t)
	rr := httptest.NewRecorder()
	// Empty body fails validation before any DB access; hitting 400 (not
	// 401) proves the route is outside the auth gate.
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%q", rr.Code, rr.Body.String())
	}
}

func TestRoutes_ProtectedRequireToken(t *testing.T) {
	r := testRouter(t)
	for _, path := range []string{
		"/api/v1/auth/me",
		"/api/v1/content",
		"/api/v1/analytics/overview",
		"/api/v1/growth/overview",
		"/api/v1/monetization/overview",
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", path, rr.Code)
		}
	}
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	r := testRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/api/v1/content", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}

func TestRoutes_UnknownPath(t *testing.T) {
	r := testRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}
