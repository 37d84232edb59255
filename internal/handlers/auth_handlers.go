package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unisphere-app/backend/internal/auth"
	"github.com/unisphere-app/backend/internal/middleware"
	"github.com/unisphere-app/backend/internal/models"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var exists bool
	err := h.db.QueryRowContext(r.Context(),
		`SELECT EXISTS(SELECT 1 FROM public.users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		serverError(w, err)
		return
	}
	if exists {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		serverError(w, err)
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Preferences:  models.DefaultPreferences(),
		Subscription: models.DefaultSubscription(),
	}

	query := `
		INSERT INTO public.users (id, name, email, password_hash, profile_image, is_admin,
			social_accounts, preferences, subscription, created_at)
		VALUES ($1, $2, $3, $4, '', FALSE, '[]', $5, $6, NOW())
		RETURNING created_at
	`
	err = h.db.QueryRowContext(r.Context(), query,
		user.ID, user.Name, user.Email, user.PasswordHash,
		jsonb(user.Preferences), jsonb(user.Subscription),
	).Scan(&user.CreatedAt)
	if err != nil {
		serverError(w, err)
		return
	}

	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"token": token,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var (
		user models.User
	)
	query := `SELECT id, name, email, password_hash, profile_image FROM public.users WHERE email = $1`
	err := h.db.QueryRowContext(r.Context(), query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.ProfileImage)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"profileImage": user.ProfileImage,
			"token":        token,
		},
	})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

type updateProfileRequest struct {
	Name         string           `json:"name"`
	Email        string           `json:"email" validate:"omitempty,email"`
	Bio          *string          `json:"bio"`
	Website      *string          `json:"website"`
	Location     *string          `json:"location"`
	ProfileImage string           `json:"profileImage"`
	Preferences  *json.RawMessage `json:"preferences"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req updateProfileRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Website != nil {
		user.Website = req.Website
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.ProfileImage != "" {
		user.ProfileImage = req.ProfileImage
	}
	if req.Preferences != nil {
		// Partial merge: only the keys present in the body change.
		if err := json.Unmarshal(*req.Preferences, &user.Preferences); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid preferences")
			return
		}
	}

	query := `
		UPDATE public.users
		SET name = $2, email = $3, bio = $4, website = $5, location = $6,
			profile_image = $7, preferences = $8
		WHERE id = $1
	`
	if _, err := h.db.ExecContext(r.Context(), query,
		user.ID, user.Name, user.Email, user.Bio, user.Website, user.Location,
		user.ProfileImage, jsonb(user.Preferences)); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"profileImage": user.ProfileImage,
			"bio":          user.Bio,
			"website":      user.Website,
			"location":     user.Location,
			"preferences":  user.Preferences,
		},
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req changePasswordRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide current and new password")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		writeError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		serverError(w, err)
		return
	}

	if _, err := h.db.ExecContext(r.Context(),
		`UPDATE public.users SET password_hash = $2 WHERE id = $1`, user.ID, hash); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Password updated successfully",
	})
}

type connectAccountRequest struct {
	Username     string     `json:"username"`
	AccountID    *string    `json:"accountId"`
	AccessToken  *string    `json:"accessToken"`
	RefreshToken *string    `json:"refreshToken"`
	TokenExpiry  *time.Time `json:"tokenExpiry"`
}

func (h *Handler) ConnectAccount(w http.ResponseWriter, r *http.Request) {
	platform := pathVar(r, "platform")
	if !models.ValidPlatform(platform) {
		writeError(w, http.StatusBadRequest, "Invalid platform")
		return
	}

	user := middleware.UserFrom(r.Context())

	var req connectAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	if i := user.FindAccount(platform); i != -1 {
		acct := &user.SocialAccounts[i]
		acct.Username = req.Username
		acct.AccountID = req.AccountID
		acct.AccessToken = req.AccessToken
		acct.RefreshToken = req.RefreshToken
		acct.TokenExpiry = req.TokenExpiry
		acct.IsConnected = true
		acct.LastSynced = now
	} else {
		user.SocialAccounts = append(user.SocialAccounts, models.SocialAccount{
			Platform:     platform,
			Username:     req.Username,
			AccountID:    req.AccountID,
			AccessToken:  req.AccessToken,
			RefreshToken: req.RefreshToken,
			TokenExpiry:  req.TokenExpiry,
			IsConnected:  true,
			LastSynced:   now,
		})
	}

	if err := h.saveSocialAccounts(r.Context(), user); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": platform + " account connected successfully",
		"account": map[string]any{
			"platform":    platform,
			"username":    req.Username,
			"isConnected": true,
		},
	})
}

func (h *Handler) DisconnectAccount(w http.ResponseWriter, r *http.Request) {
	platform := pathVar(r, "platform")
	user := middleware.UserFrom(r.Context())

	i := user.FindAccount(platform)
	if i == -1 {
		writeError(w, http.StatusNotFound, "No connected "+platform+" account found")
		return
	}
	// Flag rather than remove; history and counters survive a reconnect.
	user.SocialAccounts[i].IsConnected = false

	if err := h.saveSocialAccounts(r.Context(), user); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": platform + " account disconnected successfully",
	})
}

func (h *Handler) GetConnectedAccounts(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	accounts := make([]map[string]any, 0, len(user.SocialAccounts))
	for _, acct := range user.SocialAccounts {
		accounts = append(accounts, map[string]any{
			"platform":      acct.Platform,
			"username":      acct.Username,
			"isConnected":   acct.IsConnected,
			"followerCount": acct.FollowerCount,
			"lastSynced":    acct.LastSynced,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"accounts": accounts,
	})
}

func (h *Handler) saveSocialAccounts(ctx context.Context, user *models.User) error {
	_, err := h.db.ExecContext(ctx,
		`UPDATE public.users SET social_accounts = $2 WHERE id = $1`,
		user.ID, jsonb(user.SocialAccounts))
	return err
}
