package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/unisphere-app/backend/internal/middleware"
	"github.com/unisphere-app/backend/internal/models"
)

const contentColumns = `id, user_id, title, content_type, caption, hashtags, media_urls,
	platforms, scheduled_for, status, platform_data, ai_generated, ai_prompt, ai_model,
	tags, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (*models.Content, error) {
	var (
		c            models.Content
		platformData []byte
	)
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.ContentType, &c.Caption,
		pq.Array(&c.Hashtags), pq.Array(&c.MediaURLs), pq.Array(&c.Platforms),
		&c.ScheduledFor, &c.Status, &platformData, &c.AIGenerated, &c.AIPrompt, &c.AIModel,
		pq.Array(&c.Tags), &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(platformData) > 0 {
		if err := json.Unmarshal(platformData, &c.PlatformData); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

type createContentRequest struct {
	Title        string     `json:"title" validate:"required"`
	ContentType  string     `json:"contentType" validate:"required,oneof=post video story reel"`
	Caption      string     `json:"caption"`
	Hashtags     []string   `json:"hashtags"`
	MediaURLs    []string   `json:"mediaUrls"`
	Platforms    []string   `json:"platforms" validate:"required,min=1"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req createContentRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide title, content type, and at least one platform")
		return
	}

	c := models.Content{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Title:        req.Title,
		ContentType:  req.ContentType,
		Caption:      req.Caption,
		Hashtags:     req.Hashtags,
		MediaURLs:    req.MediaURLs,
		Platforms:    req.Platforms,
		ScheduledFor: req.ScheduledFor,
		Status:       models.DeriveStatus(req.ScheduledFor),
		PlatformData: models.NewPlatformData(req.Platforms),
	}

	query := `
		INSERT INTO public.contents (id, user_id, title, content_type, caption, hashtags,
			media_urls, platforms, scheduled_for, status, platform_data, ai_generated,
			tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := h.db.QueryRowContext(r.Context(), query,
		c.ID, c.UserID, c.Title, c.ContentType, c.Caption,
		pq.Array(c.Hashtags), pq.Array(c.MediaURLs), pq.Array(c.Platforms),
		c.ScheduledFor, c.Status, jsonb(c.PlatformData), pq.Array(c.Tags),
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"content": c,
	})
}

func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	q := r.URL.Query()
	page := parsePagination(r)

	where := "user_id = $1"
	args := []any{user.ID}
	if v := q.Get("status"); v != "" {
		args = append(args, v)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if v := q.Get("platform"); v != "" {
		args = append(args, v)
		where += fmt.Sprintf(" AND $%d = ANY(platforms)", len(args))
	}
	if v := q.Get("contentType"); v != "" {
		args = append(args, v)
		where += fmt.Sprintf(" AND content_type = $%d", len(args))
	}

	var total int
	if err := h.db.QueryRowContext(r.Context(),
		"SELECT COUNT(*) FROM public.contents WHERE "+where, args...).Scan(&total); err != nil {
		serverError(w, err)
		return
	}

	query := "SELECT " + contentColumns + " FROM public.contents WHERE " + where +
		" ORDER BY created_at DESC LIMIT " + strconv.Itoa(page.Limit) +
		" OFFSET " + strconv.Itoa(page.Offset())
	rows, err := h.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		serverError(w, err)
		return
	}
	defer rows.Close()

	contents := make([]models.Content, 0, page.Limit)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			serverError(w, err)
			return
		}
		contents = append(contents, *c)
	}
	if err := rows.Err(); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"count":       len(contents),
		"total":       total,
		"pages":       int(math.Ceil(float64(total) / float64(page.Limit))),
		"currentPage": page.Page,
		"content":     contents,
	})
}

// ownedContent loads content by id and enforces owner equality.
func (h *Handler) ownedContent(r *http.Request, action string) (*models.Content, int, string) {
	id := pathVar(r, "id")
	user := middleware.UserFrom(r.Context())

	row := h.db.QueryRowContext(r.Context(),
		"SELECT "+contentColumns+" FROM public.contents WHERE id = $1", id)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, http.StatusNotFound, "Content not found"
	}
	if err != nil {
		return nil, http.StatusInternalServerError, ""
	}
	if c.UserID != user.ID {
		return nil, http.StatusForbidden, "Not authorized to " + action + " this content"
	}
	return c, 0, ""
}

func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	c, status, msg := h.ownedContent(r, "access")
	if c == nil {
		if status == http.StatusInternalServerError {
			serverError(w, nil)
			return
		}
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"content": c,
	})
}

type updateContentRequest struct {
	Title        string     `json:"title"`
	ContentType  string     `json:"contentType" validate:"omitempty,oneof=post video story reel"`
	Caption      *string    `json:"caption"`
	Hashtags     []string   `json:"hashtags"`
	MediaURLs    []string   `json:"mediaUrls"`
	Platforms    []string   `json:"platforms"`
	ScheduledFor *time.Time `json:"scheduledFor"`
	Status       string     `json:"status" validate:"omitempty,oneof=draft scheduled published failed"`
}

func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	c, status, msg := h.ownedContent(r, "update")
	if c == nil {
		if status == http.StatusInternalServerError {
			serverError(w, nil)
			return
		}
		writeError(w, status, msg)
		return
	}

	var req updateContentRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Title != "" {
		c.Title = req.Title
	}
	if req.ContentType != "" {
		c.ContentType = req.ContentType
	}
	if req.Caption != nil {
		c.Caption = *req.Caption
	}
	if req.Hashtags != nil {
		c.Hashtags = req.Hashtags
	}
	if req.MediaURLs != nil {
		c.MediaURLs = req.MediaURLs
	}
	if len(req.Platforms) > 0 {
		c.Platforms = req.Platforms
		c.PlatformData = models.ReconcilePlatformData(c.PlatformData, req.Platforms)
	}
	if req.ScheduledFor != nil {
		c.ScheduledFor = req.ScheduledFor
		if c.Status == models.ContentDraft {
			c.Status = models.ContentScheduled
		}
	}
	if req.Status != "" {
		c.Status = req.Status
	}

	if err := h.saveContent(r, c); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"content": c,
	})
}

func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	c, status, msg := h.ownedContent(r, "delete")
	if c == nil {
		if status == http.StatusInternalServerError {
			serverError(w, nil)
			return
		}
		writeError(w, status, msg)
		return
	}

	if _, err := h.db.ExecContext(r.Context(),
		`DELETE FROM public.contents WHERE id = $1`, c.ID); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Content deleted successfully",
	})
}

func (h *Handler) PublishContent(w http.ResponseWriter, r *http.Request) {
	c, status, msg := h.ownedContent(r, "publish")
	if c == nil {
		if status == http.StatusInternalServerError {
			serverError(w, nil)
			return
		}
		writeError(w, status, msg)
		return
	}

	if c.Status == models.ContentPublished {
		writeError(w, http.StatusBadRequest, "Content is already published")
		return
	}

	now := time.Now().UTC()
	c.Status = models.ContentPublished
	c.ScheduledFor = nil
	for i := range c.PlatformData {
		pd := &c.PlatformData[i]
		postID := fmt.Sprintf("mock-post-id-%d", now.UnixMilli())
		postURL := fmt.Sprintf("https://example.com/%s/post/%s", pd.Platform, postID)
		pd.Status = models.PlatformPublished
		pd.PublishedAt = &now
		pd.PostID = &postID
		pd.PostURL = &postURL
	}

	if err := h.saveContent(r, c); err != nil {
		serverError(w, err)
		return
	}

	h.emitEvent(c.UserID, realtimeEvent{Type: "content.published", ContentID: c.ID, Status: c.Status})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Content published successfully",
		"content": c,
	})
}

type generateContentRequest struct {
	Prompt      string   `json:"prompt" validate:"required"`
	Platforms   []string `json:"platforms" validate:"required,min=1"`
	ContentType string   `json:"contentType" validate:"required,oneof=post video story reel"`
}

// GenerateContent creates an AI-drafted content record. The generation
// itself is a stand-in until a real model backend is wired up.
func (h *Handler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req generateContentRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide prompt, platforms, and content type")
		return
	}

	title := "AI Generated: " + req.Prompt
	if len(req.Prompt) > 50 {
		title = "AI Generated: " + req.Prompt[:50] + "..."
	}
	caption := fmt.Sprintf("AI-generated content based on: %q\n\n"+
		"This is a placeholder for AI-generated content. In production, this would be "+
		"generated using a language model based on your prompt.", req.Prompt)
	hashtags := []string{"content", "socialmedia", "ai", "generated", "unisphere"}
	model := "gpt-3.5-turbo"

	c := models.Content{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Title:        title,
		ContentType:  req.ContentType,
		Caption:      caption,
		Hashtags:     hashtags,
		Platforms:    req.Platforms,
		Status:       models.ContentDraft,
		PlatformData: models.NewPlatformData(req.Platforms),
		AIGenerated:  true,
		AIPrompt:     &req.Prompt,
		AIModel:      &model,
	}

	query := `
		INSERT INTO public.contents (id, user_id, title, content_type, caption, hashtags,
			media_urls, platforms, scheduled_for, status, platform_data, ai_generated,
			ai_prompt, ai_model, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL, $9, $10, TRUE, $11, $12, $13, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := h.db.QueryRowContext(r.Context(), query,
		c.ID, c.UserID, c.Title, c.ContentType, c.Caption,
		pq.Array(c.Hashtags), pq.Array(c.MediaURLs), pq.Array(c.Platforms),
		c.Status, jsonb(c.PlatformData), c.AIPrompt, c.AIModel, pq.Array(c.Tags),
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"content": c,
	})
}

func (h *Handler) saveContent(r *http.Request, c *models.Content) error {
	query := `
		UPDATE public.contents
		SET title = $2, content_type = $3, caption = $4, hashtags = $5, media_urls = $6,
			platforms = $7, scheduled_for = $8, status = $9, platform_data = $10,
			tags = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return h.db.QueryRowContext(r.Context(), query,
		c.ID, c.Title, c.ContentType, c.Caption, pq.Array(c.Hashtags), pq.Array(c.MediaURLs),
		pq.Array(c.Platforms), c.ScheduledFor, c.Status, jsonb(c.PlatformData),
		pq.Array(c.Tags)).Scan(&c.UpdatedAt)
}
