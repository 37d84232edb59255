package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unisphere-app/backend/internal/models"
)

func connectRequest(user *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/connect/instagram", nil)
	if user != nil {
		req = req.WithContext(WithUser(req.Context(), user))
	}
	return req
}

func userWithConnections(plan string, connected int) *models.User {
	u := &models.User{
		ID:           "u1",
		Subscription: models.Subscription{Plan: plan, Status: "active"},
	}
	for i := 0; i < connected; i++ {
		u.SocialAccounts = append(u.SocialAccounts, models.SocialAccount{
			Platform:    models.Platforms[i%len(models.Platforms)],
			IsConnected: true,
		})
	}
	return u
}

func TestPlanEnforcer_UnderCapPasses(t *testing.T) {
	pe := NewPlanEnforcer()
	var called bool
	h := pe.Middleware(okHandler(t, &called))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, connectRequest(userWithConnections("free", 4)))

	if rr.Code != http.StatusOK || !called {
		t.Fatalf("expected pass under cap got %d", rr.Code)
	}
}

func TestPlanEnforcer_AtCapRejects(t *testing.T) {
	pe := NewPlanEnforcer()
	var called bool
	h := pe.Middleware(okHandler(t, &called))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, connectRequest(userWithConnections("free", 5)))

	if rr.Code != http.StatusPaymentRequired || called {
		t.Fatalf("expected 402 at cap got %d", rr.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json: %v body=%q", err, rr.Body.String())
	}
	if out["error"] != "Social account limit reached for your plan, please upgrade" {
		t.Fatalf("unexpected error message %#v", out)
	}
}

func TestPlanEnforcer_BusinessUnlimited(t *testing.T) {
	pe := NewPlanEnforcer()
	var called bool
	h := pe.Middleware(okHandler(t, &called))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, connectRequest(userWithConnections("business", 40)))

	if rr.Code != http.StatusOK || !called {
		t.Fatalf("expected unlimited business plan got %d", rr.Code)
	}
}

func TestPlanEnforcer_UnknownPlanFallsBackToFree(t *testing.T) {
	pe := NewPlanEnforcer()
	var called bool
	h := pe.Middleware(okHandler(t, &called))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, connectRequest(userWithConnections("legacy", 5)))

	if rr.Code != http.StatusPaymentRequired || called {
		t.Fatalf("expected free cap applied got %d", rr.Code)
	}
}

func TestPlanEnforcer_DisconnectedAccountsDoNotCount(t *testing.T) {
	pe := NewPlanEnforcer()
	u := userWithConnections("free", 5)
	u.SocialAccounts[0].IsConnected = false

	var called bool
	rr := httptest.NewRecorder()
	pe.Middleware(okHandler(t, &called)).ServeHTTP(rr, connectRequest(u))

	if rr.Code != http.StatusOK || !called {
		t.Fatalf("expected disconnected accounts ignored got %d", rr.Code)
	}
}

func TestPlanEnforcer_IgnoresOtherRoutes(t *testing.T) {
	pe := NewPlanEnforcer()
	var called bool
	h := pe.Middleware(okHandler(t, &called))

	// No user in context, but only connect POSTs are gated.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/content", nil)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || !called {
		t.Fatalf("expected non-connect route untouched got %d", rr.Code)
	}
}
