package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unisphere-app/backend/internal/growthplan"
	"github.com/unisphere-app/backend/internal/middleware"
	"github.com/unisphere-app/backend/internal/models"
)

// loadGrowth fetches the caller's growth record, creating an empty one on
// first access. The created flag lets list endpoints seed their sub-list.
func (h *Handler) loadGrowth(ctx context.Context, userID string) (*models.GrowthRecord, bool, error) {
	var (
		rec            models.GrowthRecord
		strategies     []byte
		collaborations []byte
		trendingTopics []byte
		hashtags       []byte
	)
	query := `
		SELECT id, user_id, strategies, collaborations, trending_topics,
			hashtag_collections, last_updated
		FROM public.growth_records WHERE user_id = $1
	`
	err := h.db.QueryRowContext(ctx, query, userID).Scan(
		&rec.ID, &rec.UserID, &strategies, &collaborations, &trendingTopics,
		&hashtags, &rec.LastUpdated)
	if err == sql.ErrNoRows {
		rec = models.GrowthRecord{
			ID:          uuid.NewString(),
			UserID:      userID,
			LastUpdated: time.Now().UTC(),
		}
		if err := h.saveGrowth(ctx, &rec); err != nil {
			return nil, false, err
		}
		return &rec, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	_ = json.Unmarshal(strategies, &rec.Strategies)
	_ = json.Unmarshal(collaborations, &rec.Collaborations)
	_ = json.Unmarshal(trendingTopics, &rec.TrendingTopics)
	_ = json.Unmarshal(hashtags, &rec.HashtagCollections)
	return &rec, false, nil
}

func (h *Handler) saveGrowth(ctx context.Context, rec *models.GrowthRecord) error {
	rec.LastUpdated = time.Now().UTC()
	query := `
		INSERT INTO public.growth_records (id, user_id, strategies, collaborations,
			trending_topics, hashtag_collections, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			strategies = EXCLUDED.strategies,
			collaborations = EXCLUDED.collaborations,
			trending_topics = EXCLUDED.trending_topics,
			hashtag_collections = EXCLUDED.hashtag_collections,
			last_updated = EXCLUDED.last_updated
	`
	_, err := h.db.ExecContext(ctx, query,
		rec.ID, rec.UserID,
		jsonb(rec.Strategies), jsonb(rec.Collaborations),
		jsonb(rec.TrendingTopics), jsonb(rec.HashtagCollections),
		rec.LastUpdated)
	return err
}

func (h *Handler) GetGrowthOverview(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	now := time.Now().UTC()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"activeStrategies":     growthplan.ActiveStrategies(rec.Strategies),
			"activeCollaborations": growthplan.ActiveCollaborations(rec.Collaborations),
			"activeTrendingTopics": growthplan.ActiveTopics(rec.TrendingTopics, now),
			"lastUpdated":          rec.LastUpdated,
		},
	})
}

func (h *Handler) GetStrategies(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	rec, created, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}
	if created {
		rec.Strategies = seedStrategies()
		if err := h.saveGrowth(r.Context(), rec); err != nil {
			serverError(w, err)
			return
		}
	}

	q := r.URL.Query()
	out := make([]models.Strategy, 0, len(rec.Strategies))
	for _, s := range rec.Strategies {
		if v := q.Get("status"); v != "" && s.Status != v {
			continue
		}
		if v := q.Get("platform"); v != "" && !s.HasPlatform(v) {
			continue
		}
		if v := q.Get("difficulty"); v != "" && s.Difficulty != v {
			continue
		}
		if v := q.Get("impact"); v != "" && s.Impact != v {
			continue
		}
		out = append(out, s)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(out),
		"data":    out,
	})
}

type createStrategyRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Difficulty  string   `json:"difficulty" validate:"required"`
	Impact      string   `json:"impact" validate:"required"`
	Platforms   []string `json:"platforms" validate:"required,min=1"`
}

func (h *Handler) CreateStrategy(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req createStrategyRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide title, description, difficulty, impact, and platforms")
		return
	}

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	s := models.Strategy{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Impact:      req.Impact,
		Platforms:   req.Platforms,
		Status:      models.StrategySuggested,
		CreatedAt:   time.Now().UTC(),
	}
	rec.Strategies = append(rec.Strategies, s)

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    s,
	})
}

type updateStrategyRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Difficulty  string         `json:"difficulty"`
	Impact      string         `json:"impact"`
	Platforms   []string       `json:"platforms"`
	Status      string         `json:"status"`
	Results     map[string]any `json:"results"`
}

func (h *Handler) UpdateStrategy(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	var req updateStrategyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	idx := -1
	for i := range rec.Strategies {
		if rec.Strategies[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		writeError(w, http.StatusNotFound, "Strategy not found")
		return
	}

	s := &rec.Strategies[idx]
	if req.Title != "" {
		s.Title = req.Title
	}
	if req.Description != "" {
		s.Description = req.Description
	}
	if req.Difficulty != "" {
		s.Difficulty = req.Difficulty
	}
	if req.Impact != "" {
		s.Impact = req.Impact
	}
	if len(req.Platforms) > 0 {
		s.Platforms = req.Platforms
	}
	if req.Status != "" {
		if err := growthplan.AdvanceStrategy(s, req.Status, req.Results, time.Now().UTC()); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    s,
	})
}

func (h *Handler) DeleteStrategy(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	kept := rec.Strategies[:0]
	found := false
	for _, s := range rec.Strategies {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		writeError(w, http.StatusNotFound, "Strategy not found")
		return
	}
	rec.Strategies = kept

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Strategy deleted successfully",
	})
}

func (h *Handler) GetCollaborations(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	rec, created, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}
	if created {
		rec.Collaborations = seedCollaborations()
		if err := h.saveGrowth(r.Context(), rec); err != nil {
			serverError(w, err)
			return
		}
	}

	q := r.URL.Query()
	out := make([]models.Collaboration, 0, len(rec.Collaborations))
	for _, c := range rec.Collaborations {
		if v := q.Get("status"); v != "" && c.Status != v {
			continue
		}
		if v := q.Get("platform"); v != "" && c.Platform != v {
			continue
		}
		if v := q.Get("match"); v != "" && c.Match != v {
			continue
		}
		out = append(out, c)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(out),
		"data":    out,
	})
}

type createCollaborationRequest struct {
	CreatorID *string `json:"creatorId"`
	Name      string  `json:"name" validate:"required"`
	Handle    string  `json:"handle"`
	Platform  string  `json:"platform" validate:"required"`
	Followers int     `json:"followers"`
	Niche     string  `json:"niche"`
	Match     string  `json:"match"`
}

func (h *Handler) CreateCollaboration(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req createCollaborationRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide name and platform")
		return
	}
	if req.Match == "" {
		req.Match = "Medium"
	}

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	c := models.Collaboration{
		ID:        uuid.NewString(),
		CreatorID: req.CreatorID,
		Name:      req.Name,
		Handle:    req.Handle,
		Platform:  req.Platform,
		Followers: req.Followers,
		Niche:     req.Niche,
		Match:     req.Match,
		Status:    models.CollabSuggested,
		CreatedAt: time.Now().UTC(),
	}
	rec.Collaborations = append(rec.Collaborations, c)

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    c,
	})
}

type updateCollaborationRequest struct {
	Name      string  `json:"name"`
	Handle    *string `json:"handle"`
	Platform  string  `json:"platform"`
	Followers *int    `json:"followers"`
	Niche     *string `json:"niche"`
	Match     string  `json:"match"`
	Status    string  `json:"status"`
	ContentID *string `json:"contentId"`
}

func (h *Handler) UpdateCollaboration(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	var req updateCollaborationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	idx := -1
	for i := range rec.Collaborations {
		if rec.Collaborations[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		writeError(w, http.StatusNotFound, "Collaboration not found")
		return
	}

	c := &rec.Collaborations[idx]
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Handle != nil {
		c.Handle = *req.Handle
	}
	if req.Platform != "" {
		c.Platform = req.Platform
	}
	if req.Followers != nil {
		c.Followers = *req.Followers
	}
	if req.Niche != nil {
		c.Niche = *req.Niche
	}
	if req.Match != "" {
		c.Match = req.Match
	}
	if req.ContentID != nil {
		c.ContentID = req.ContentID
	}
	if req.Status != "" {
		if err := growthplan.AdvanceCollaboration(c, req.Status, time.Now().UTC()); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    c,
	})
}

func (h *Handler) DeleteCollaboration(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	kept := rec.Collaborations[:0]
	found := false
	for _, c := range rec.Collaborations {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		writeError(w, http.StatusNotFound, "Collaboration not found")
		return
	}
	rec.Collaborations = kept

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Collaboration deleted successfully",
	})
}

func (h *Handler) GetTrendingTopics(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	rec, created, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}
	if created {
		rec.TrendingTopics = seedTrendingTopics()
		if err := h.saveGrowth(r.Context(), rec); err != nil {
			serverError(w, err)
			return
		}
	}

	q := r.URL.Query()
	now := time.Now().UTC()
	out := make([]models.TrendingTopic, 0, len(rec.TrendingTopics))
	for _, t := range rec.TrendingTopics {
		if v := q.Get("status"); v != "" {
			if t.Status != v {
				continue
			}
			// Stale actives are hidden without being transitioned.
			if v == models.TopicActive && t.Expired(now) {
				continue
			}
		}
		if v := q.Get("platform"); v != "" && !t.HasPlatform(v) {
			continue
		}
		if v := q.Get("relevance"); v != "" && t.Relevance != v {
			continue
		}
		out = append(out, t)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(out),
		"data":    out,
	})
}

type createTopicRequest struct {
	Topic     string     `json:"topic" validate:"required"`
	Growth    string     `json:"growth"`
	Relevance string     `json:"relevance"`
	Platforms []string   `json:"platforms" validate:"required,min=1"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (h *Handler) CreateTrendingTopic(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req createTopicRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide topic and platforms")
		return
	}
	if req.Growth == "" {
		req.Growth = "+0%"
	}
	if req.Relevance == "" {
		req.Relevance = "Medium"
	}
	expiresAt := req.ExpiresAt
	if expiresAt == nil {
		e := time.Now().UTC().Add(7 * 24 * time.Hour)
		expiresAt = &e
	}

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	t := models.TrendingTopic{
		ID:        uuid.NewString(),
		Topic:     req.Topic,
		Growth:    req.Growth,
		Relevance: req.Relevance,
		Platforms: req.Platforms,
		Status:    models.TopicActive,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}
	rec.TrendingTopics = append(rec.TrendingTopics, t)

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    t,
	})
}

type updateTopicRequest struct {
	Topic          string     `json:"topic"`
	Growth         string     `json:"growth"`
	Relevance      string     `json:"relevance"`
	Platforms      []string   `json:"platforms"`
	Status         string     `json:"status"`
	ContentCreated *bool      `json:"contentCreated"`
	ContentID      *string    `json:"contentId"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

func (h *Handler) UpdateTrendingTopic(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	var req updateTopicRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	idx := -1
	for i := range rec.TrendingTopics {
		if rec.TrendingTopics[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		writeError(w, http.StatusNotFound, "Trending topic not found")
		return
	}

	t := &rec.TrendingTopics[idx]
	if req.Topic != "" {
		t.Topic = req.Topic
	}
	if req.Growth != "" {
		t.Growth = req.Growth
	}
	if req.Relevance != "" {
		t.Relevance = req.Relevance
	}
	if len(req.Platforms) > 0 {
		t.Platforms = req.Platforms
	}
	if req.ContentCreated != nil {
		t.ContentCreated = *req.ContentCreated
	}
	if req.ContentID != nil {
		t.ContentID = req.ContentID
	}
	if req.ExpiresAt != nil {
		t.ExpiresAt = req.ExpiresAt
	}
	if req.Status != "" && req.Status != t.Status {
		if t.Status != models.TopicActive || req.Status != models.TopicArchived {
			writeError(w, http.StatusBadRequest,
				"Invalid status transition from "+t.Status+" to "+req.Status)
			return
		}
		t.Status = models.TopicArchived
	}

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    t,
	})
}

func (h *Handler) DeleteTrendingTopic(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	kept := rec.TrendingTopics[:0]
	found := false
	for _, t := range rec.TrendingTopics {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		writeError(w, http.StatusNotFound, "Trending topic not found")
		return
	}
	rec.TrendingTopics = kept

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Trending topic deleted successfully",
	})
}

func (h *Handler) GetHashtagCollections(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	rec, created, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}
	if created {
		rec.HashtagCollections = seedHashtagCollections()
		if err := h.saveGrowth(r.Context(), rec); err != nil {
			serverError(w, err)
			return
		}
	}

	q := r.URL.Query()
	out := make([]models.HashtagCollection, 0, len(rec.HashtagCollections))
	for _, c := range rec.HashtagCollections {
		if v := q.Get("platform"); v != "" && !c.HasPlatform(v) {
			continue
		}
		if v := q.Get("relevance"); v != "" && c.Relevance != v {
			continue
		}
		out = append(out, c)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(out),
		"data":    out,
	})
}

type createHashtagCollectionRequest struct {
	Name      string   `json:"name" validate:"required"`
	Hashtags  []string `json:"hashtags" validate:"required,min=1"`
	Reach     string   `json:"reach"`
	Relevance string   `json:"relevance"`
	Platforms []string `json:"platforms" validate:"required,min=1"`
}

func (h *Handler) CreateHashtagCollection(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req createHashtagCollectionRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide name, hashtags, and platforms")
		return
	}
	if req.Reach == "" {
		req.Reach = "0"
	}
	if req.Relevance == "" {
		req.Relevance = "Medium"
	}

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	c := models.HashtagCollection{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Hashtags:  req.Hashtags,
		Reach:     req.Reach,
		Relevance: req.Relevance,
		Platforms: req.Platforms,
		CreatedAt: time.Now().UTC(),
	}
	rec.HashtagCollections = append(rec.HashtagCollections, c)

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    c,
	})
}

type updateHashtagCollectionRequest struct {
	Name       string   `json:"name"`
	Hashtags   []string `json:"hashtags"`
	Reach      string   `json:"reach"`
	Relevance  string   `json:"relevance"`
	Platforms  []string `json:"platforms"`
	UsageCount *int     `json:"usageCount"`
}

func (h *Handler) UpdateHashtagCollection(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	var req updateHashtagCollectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	idx := -1
	for i := range rec.HashtagCollections {
		if rec.HashtagCollections[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		writeError(w, http.StatusNotFound, "Hashtag collection not found")
		return
	}

	c := &rec.HashtagCollections[idx]
	if req.Name != "" {
		c.Name = req.Name
	}
	if len(req.Hashtags) > 0 {
		c.Hashtags = req.Hashtags
	}
	if req.Reach != "" {
		c.Reach = req.Reach
	}
	if req.Relevance != "" {
		c.Relevance = req.Relevance
	}
	if len(req.Platforms) > 0 {
		c.Platforms = req.Platforms
	}
	if req.UsageCount != nil {
		c.UsageCount = *req.UsageCount
	}

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    c,
	})
}

func (h *Handler) DeleteHashtagCollection(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	kept := rec.HashtagCollections[:0]
	found := false
	for _, c := range rec.HashtagCollections {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		writeError(w, http.StatusNotFound, "Hashtag collection not found")
		return
	}
	rec.HashtagCollections = kept

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Hashtag collection deleted successfully",
	})
}

type generateRecommendationsRequest struct {
	Platform  string `json:"platform" validate:"required"`
	FocusArea string `json:"focusArea" validate:"required,oneof=strategies hashtags collaborations"`
}

// GenerateRecommendations appends mock-generated items to the requested
// sub-list, flagged aiGenerated.
func (h *Handler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req generateRecommendationsRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide platform and focusArea")
		return
	}

	rec, _, err := h.loadGrowth(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	var generated any
	now := time.Now().UTC()
	switch req.FocusArea {
	case "strategies":
		items := mockStrategies(req.Platform, now)
		rec.Strategies = append(rec.Strategies, items...)
		generated = items
	case "hashtags":
		item := mockHashtagCollection(req.Platform, now)
		rec.HashtagCollections = append(rec.HashtagCollections, item)
		generated = []models.HashtagCollection{item}
	case "collaborations":
		items := mockCollaborations(req.Platform, now)
		rec.Collaborations = append(rec.Collaborations, items...)
		generated = items
	}

	if err := h.saveGrowth(r.Context(), rec); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "AI-generated " + req.FocusArea + " for " + req.Platform + " created successfully",
		"data":    generated,
	})
}

func seedStrategies() []models.Strategy {
	now := time.Now().UTC()
	return []models.Strategy{
		{
			ID:          uuid.NewString(),
			Title:       "Increase Engagement Rate",
			Description: "Boost your engagement by responding to comments within 2 hours and asking questions in your captions.",
			Difficulty:  "Easy",
			Impact:      "Medium",
			Platforms:   []string{"instagram", "tiktok", "twitter"},
			Status:      models.StrategySuggested,
			AIGenerated: true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Optimize Posting Schedule",
			Description: "Post during peak hours (6-8PM weekdays) when your audience is most active to maximize reach.",
			Difficulty:  "Easy",
			Impact:      "High",
			Platforms:   []string{"instagram", "tiktok", "youtube", "twitter"},
			Status:      models.StrategySuggested,
			AIGenerated: true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Collaborate with Similar Creators",
			Description: "Partner with creators in your niche for cross-promotion to reach new audiences.",
			Difficulty:  "Medium",
			Impact:      "High",
			Platforms:   []string{"instagram", "youtube", "tiktok"},
			Status:      models.StrategySuggested,
			AIGenerated: true,
			CreatedAt:   now,
		},
	}
}

func seedCollaborations() []models.Collaboration {
	now := time.Now().UTC()
	return []models.Collaboration{
		{
			ID:          uuid.NewString(),
			Name:        "Sarah Johnson",
			Handle:      "@sarahjfashion",
			Platform:    "instagram",
			Followers:   25400,
			Niche:       "Fashion & Style",
			Match:       "High",
			Status:      models.CollabSuggested,
			AIGenerated: true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Mike Chen",
			Handle:      "@mikestravels",
			Platform:    "instagram",
			Followers:   42800,
			Niche:       "Travel & Lifestyle",
			Match:       "Medium",
			Status:      models.CollabSuggested,
			AIGenerated: true,
			CreatedAt:   now,
		},
	}
}

func seedTrendingTopics() []models.TrendingTopic {
	now := time.Now().UTC()
	expires := now.Add(14 * 24 * time.Hour)
	return []models.TrendingTopic{
		{
			ID:          uuid.NewString(),
			Topic:       "Sustainable Fashion",
			Growth:      "+28%",
			Relevance:   "High",
			Platforms:   []string{"instagram", "tiktok", "youtube"},
			Status:      models.TopicActive,
			AIGenerated: true,
			CreatedAt:   now,
			ExpiresAt:   &expires,
		},
		{
			ID:          uuid.NewString(),
			Topic:       "Morning Routines",
			Growth:      "+15%",
			Relevance:   "Medium",
			Platforms:   []string{"youtube", "tiktok"},
			Status:      models.TopicActive,
			AIGenerated: true,
			CreatedAt:   now,
			ExpiresAt:   &expires,
		},
	}
}

func seedHashtagCollections() []models.HashtagCollection {
	now := time.Now().UTC()
	return []models.HashtagCollection{
		{
			ID:          uuid.NewString(),
			Name:        "Fashion Essentials",
			Hashtags:    []string{"OOTD", "FashionTips", "StyleInspo", "FashionBlogger", "SummerStyle"},
			Reach:       "2.5M",
			Relevance:   "High",
			Platforms:   []string{"instagram", "tiktok"},
			AIGenerated: true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Travel Photography",
			Hashtags:    []string{"TravelGram", "Wanderlust", "TravelPhotography", "ExploreMore", "TravelBlogger"},
			Reach:       "4.8M",
			Relevance:   "Medium",
			Platforms:   []string{"instagram"},
			AIGenerated: true,
			CreatedAt:   now,
		},
	}
}

func mockStrategies(platform string, now time.Time) []models.Strategy {
	return []models.Strategy{
		{
			ID:          uuid.NewString(),
			Title:       "Create Behind-the-Scenes Content",
			Description: "Share your creative process and daily routine to increase audience connection and engagement.",
			Difficulty:  "Easy",
			Impact:      "High",
			Platforms:   []string{platform},
			Status:      models.StrategySuggested,
			AIGenerated: true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Implement Hashtag Strategy",
			Description: "Research and use a mix of popular, niche, and branded hashtags to increase discoverability.",
			Difficulty:  "Medium",
			Impact:      "Medium",
			Platforms:   []string{platform},
			Status:      models.StrategySuggested,
			AIGenerated: true,
			CreatedAt:   now,
		},
	}
}

func mockHashtagCollection(platform string, now time.Time) models.HashtagCollection {
	return models.HashtagCollection{
		ID:          uuid.NewString(),
		Name:        titleCase(platform) + " Growth Hashtags",
		Hashtags:    []string{"ContentCreator", "CreatorEconomy", "DigitalMarketing", "SocialMediaTips", "GrowthHacking"},
		Reach:       "3.2M",
		Relevance:   "High",
		Platforms:   []string{platform},
		AIGenerated: true,
		CreatedAt:   now,
	}
}

func mockCollaborations(platform string, now time.Time) []models.Collaboration {
	return []models.Collaboration{
		{
			ID:          uuid.NewString(),
			Name:        "Alex Rivera",
			Handle:      "@alexcreates",
			Platform:    platform,
			Followers:   35600,
			Niche:       "Digital Marketing",
			Match:       "High",
			Status:      models.CollabSuggested,
			AIGenerated: true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Jamie Wilson",
			Handle:      "@jamiewilson",
			Platform:    platform,
			Followers:   28900,
			Niche:       "Lifestyle & Wellness",
			Match:       "Medium",
			Status:      models.CollabSuggested,
			AIGenerated: true,
			CreatedAt:   now,
		},
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
