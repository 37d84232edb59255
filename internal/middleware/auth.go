package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/unisphere-app/backend/internal/auth"
	"github.com/unisphere-app/backend/internal/models"
)

type contextKey int

const userContextKey contextKey = iota

// UserFrom returns the authenticated user attached by the auth gate, or nil.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userContextKey).(*models.User)
	return u
}

// WithUser is used by tests to seed the request context.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// AuthGate resolves bearer tokens to user records and attaches them to the
// request context. It is the single authentication check in the system;
// ownership is enforced by owner-scoped queries downstream.
type AuthGate struct {
	DB     *sql.DB
	Tokens *auth.TokenManager
}

func (g *AuthGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		userID, err := g.Tokens.Parse(tokenString)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		user, err := g.loadUser(r.Context(), userID)
		if err == sql.ErrNoRows {
			respondError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (g *AuthGate) loadUser(ctx context.Context, id string) (*models.User, error) {
	var (
		u              models.User
		socialAccounts []byte
		preferences    []byte
		subscription   []byte
	)
	query := `
		SELECT id, name, email, password_hash, profile_image, bio, website, location,
		       is_admin, social_accounts, preferences, subscription, created_at
		FROM public.users WHERE id = $1
	`
	err := g.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.ProfileImage, &u.Bio, &u.Website, &u.Location,
		&u.IsAdmin, &socialAccounts, &preferences, &subscription, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(socialAccounts) > 0 {
		_ = json.Unmarshal(socialAccounts, &u.SocialAccounts)
	}
	if len(preferences) > 0 {
		_ = json.Unmarshal(preferences, &u.Preferences)
	}
	if len(subscription) > 0 {
		_ = json.Unmarshal(subscription, &u.Subscription)
	}
	return &u, nil
}

// RequireAdmin rejects callers whose identity record does not carry the
// admin flag. No observed route mounts it today.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFrom(r.Context())
		if user == nil {
			respondError(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		if !user.IsAdmin {
			respondError(w, http.StatusForbidden, "Not authorized as an admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
