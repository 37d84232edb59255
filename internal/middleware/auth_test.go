package middleware

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/unisphere-app/backend/internal/auth"
	"github.com/unisphere-app/backend/internal/models"
)

func okHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func userColumns() []string {
	return []string{
		"id", "name", "email", "password_hash", "profile_image", "bio", "website", "location",
		"is_admin", "social_accounts", "preferences", "subscription", "created_at",
	}
}

func TestAuthGate_MissingHeader(t *testing.T) {
	gate := &AuthGate{Tokens: auth.NewTokenManagerWithSecret("s", time.Hour)}
	var called bool
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)

	gate.Middleware(okHandler(t, &called)).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
	if called {
		t.Fatalf("next handler should not run")
	}
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json: %v body=%q", err, rr.Body.String())
	}
	if out["error"] != "Not authorized, no token" {
		t.Fatalf("unexpected error message %#v", out)
	}
}

func TestAuthGate_BadToken(t *testing.T) {
	gate := &AuthGate{Tokens: auth.NewTokenManagerWithSecret("s", time.Hour)}
	var called bool
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	gate.Middleware(okHandler(t, &called)).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized || called {
		t.Fatalf("expected 401 without handler call got %d", rr.Code)
	}
}

func TestAuthGate_UnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer func() { _ = db.Close() }()

	tokens := auth.NewTokenManagerWithSecret("s", time.Hour)
	token, err := tokens.Sign("ghost")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	mock.ExpectQuery(`SELECT id, name, email, password_hash`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	gate := &AuthGate{DB: db, Tokens: tokens}
	var called bool
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	gate.Middleware(okHandler(t, &called)).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized || called {
		t.Fatalf("expected 401 without handler call got %d", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

func TestAuthGate_AttachesUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer func() { _ = db.Close() }()

	tokens := auth.NewTokenManagerWithSecret("s", time.Hour)
	token, err := tokens.Sign("u1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	accounts := `[{"platform":"instagram","username":"alice","isConnected":true}]`
	mock.ExpectQuery(`SELECT id, name, email, password_hash`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(
			"u1", "Alice", "alice@example.com", "hash", "", nil, nil, nil,
			false, []byte(accounts), []byte(`{"darkMode":true}`), []byte(`{"plan":"pro"}`), time.Now(),
		))

	gate := &AuthGate{DB: db, Tokens: tokens}
	var got *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	gate.Middleware(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%q", rr.Code, rr.Body.String())
	}
	if got == nil || got.ID != "u1" || got.Email != "alice@example.com" {
		t.Fatalf("expected user in context got %#v", got)
	}
	if len(got.SocialAccounts) != 1 || !got.SocialAccounts[0].IsConnected {
		t.Fatalf("expected social accounts decoded got %#v", got.SocialAccounts)
	}
	if !got.Preferences.DarkMode || got.Subscription.Plan != "pro" {
		t.Fatalf("expected jsonb fields decoded got %#v %#v", got.Preferences, got.Subscription)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	var called bool
	h := RequireAdmin(okHandler(t, &called))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(WithUser(req.Context(), &models.User{ID: "u1"}))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(WithUser(req.Context(), &models.User{ID: "u1", IsAdmin: true}))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !called {
		t.Fatalf("expected admin to pass got %d", rr.Code)
	}
}
