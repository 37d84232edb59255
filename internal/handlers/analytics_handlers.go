package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/unisphere-app/backend/internal/aggregate"
	"github.com/unisphere-app/backend/internal/middleware"
	"github.com/unisphere-app/backend/internal/models"
	"github.com/unisphere-app/backend/internal/platformsync"
)

// periodStart maps the period query value (7d/30d/90d/1y) to a range start.
// Unknown values fall back to 30 days.
func periodStart(period string, end time.Time) time.Time {
	switch period {
	case "7d":
		return end.AddDate(0, 0, -7)
	case "90d":
		return end.AddDate(0, 0, -90)
	case "1y":
		return end.AddDate(-1, 0, 0)
	default:
		return end.AddDate(0, 0, -30)
	}
}

func (h *Handler) store() *snapshotStore {
	return &snapshotStore{db: h.db}
}

func (h *Handler) GetAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		platform = models.PlatformAll
	}
	end := time.Now().UTC()
	start := periodStart(r.URL.Query().Get("period"), end)

	st := h.store()
	latest, err := st.LatestSnapshot(r.Context(), user.ID, platform)
	if err != nil {
		serverError(w, err)
		return
	}
	if latest == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "No analytics data available yet",
			"data":    nil,
		})
		return
	}

	history, err := st.snapshotsForRange(r.Context(), user.ID, platform, start, end)
	if err != nil {
		serverError(w, err)
		return
	}

	growthRate := 0.0
	if len(history) > 0 {
		growthRate = aggregate.GrowthRate(latest, &history[0])
	}

	historical := make([]map[string]any, 0, len(history))
	for _, s := range history {
		historical = append(historical, map[string]any{
			"date":        s.Date,
			"followers":   s.Metrics.Followers.Count,
			"engagement":  s.Metrics.Engagement.Rate,
			"impressions": s.Metrics.Impressions.Count,
			"reach":       s.Metrics.Reach.Count,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"overview": map[string]any{
				"followers": map[string]any{
					"count":            latest.Metrics.Followers.Count,
					"change":           latest.Metrics.Followers.Change,
					"changePercentage": latest.Metrics.Followers.ChangePercentage,
					"growthRate":       growthRate,
				},
				"engagement": map[string]any{
					"rate":   latest.Metrics.Engagement.Rate,
					"change": latest.Metrics.Engagement.Change,
				},
				"impressions": map[string]any{
					"count":  latest.Metrics.Impressions.Count,
					"change": latest.Metrics.Impressions.Change,
				},
				"reach": map[string]any{
					"count":  latest.Metrics.Reach.Count,
					"change": latest.Metrics.Reach.Change,
				},
			},
			"audienceData":       latest.Audience,
			"contentPerformance": latest.ContentPerformance,
			"growthInsights":     latest.Insights,
			"historicalData":     historical,
			"lastUpdated":        latest.LastUpdated,
		},
	})
}

func (h *Handler) GetAudienceDemographics(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		platform = models.PlatformAll
	}

	latest, err := h.store().LatestSnapshot(r.Context(), user.ID, platform)
	if err != nil {
		serverError(w, err)
		return
	}
	if latest == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "No audience data available yet",
			"data":    nil,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"data":        latest.Audience,
		"lastUpdated": latest.LastUpdated,
	})
}

func (h *Handler) GetContentPerformance(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	q := r.URL.Query()
	platform := q.Get("platform")
	if platform == "" {
		platform = models.PlatformAll
	}
	end := time.Now().UTC()
	start := periodStart(q.Get("period"), end)

	where := "user_id = $1 AND status = $2"
	args := []any{user.ID, models.ContentPublished}
	if platform != models.PlatformAll {
		args = append(args, platform)
		where += " AND $3 = ANY(platforms)"
	}
	if v := q.Get("contentType"); v != "" {
		args = append(args, v)
		if platform != models.PlatformAll {
			where += " AND content_type = $4"
		} else {
			where += " AND content_type = $3"
		}
	}

	rows, err := h.db.QueryContext(r.Context(),
		"SELECT "+contentColumns+" FROM public.contents WHERE "+where+
			" ORDER BY updated_at DESC", args...)
	if err != nil {
		serverError(w, err)
		return
	}
	defer rows.Close()

	items := make([]map[string]any, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			serverError(w, err)
			return
		}
		publishedAt := publicationTime(c)
		if publishedAt == nil || publishedAt.Before(start) || publishedAt.After(end) {
			continue
		}

		performance := make([]map[string]any, 0, len(c.PlatformData))
		for _, pd := range c.PlatformData {
			performance = append(performance, map[string]any{
				"platform":       pd.Platform,
				"engagementRate": c.EngagementRate(pd.Platform),
				"likes":          pd.Analytics.Likes,
				"comments":       pd.Analytics.Comments,
				"shares":         pd.Analytics.Shares,
				"saves":          pd.Analytics.Saves,
				"impressions":    pd.Analytics.Impressions,
				"reach":          pd.Analytics.Reach,
			})
		}
		items = append(items, map[string]any{
			"id":          c.ID,
			"title":       c.Title,
			"contentType": c.ContentType,
			"platforms":   c.Platforms,
			"publishedAt": publishedAt,
			"performance": performance,
		})
	}
	if err := rows.Err(); err != nil {
		serverError(w, err)
		return
	}

	latest, err := h.store().LatestSnapshot(r.Context(), user.ID, platform)
	if err != nil {
		serverError(w, err)
		return
	}

	byType := []models.TypePerformance{}
	byTime := []models.TimePerformance{}
	topPerforming := []models.TopContent{}
	if latest != nil {
		byType = latest.ContentPerformance.ByType
		byTime = latest.ContentPerformance.ByTime
		topPerforming = latest.ContentPerformance.TopPerforming
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"contentItems":      items,
			"performanceByType": byType,
			"performanceByTime": byTime,
			"topPerforming":     topPerforming,
		},
	})
}

// publicationTime is the first sub-record's publish stamp; publish stamps
// every platform at once, so any of them dates the item.
func publicationTime(c *models.Content) *time.Time {
	if len(c.PlatformData) == 0 {
		return nil
	}
	return c.PlatformData[0].PublishedAt
}

func (h *Handler) GetGrowthInsights(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		platform = models.PlatformAll
	}

	latest, err := h.store().LatestSnapshot(r.Context(), user.ID, platform)
	if err != nil {
		serverError(w, err)
		return
	}
	if latest == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "No insights available yet",
			"data":    []models.Insight{},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"data":        latest.Insights,
		"lastUpdated": latest.LastUpdated,
	})
}

type syncAnalyticsRequest struct {
	Platforms []string `json:"platforms" validate:"required,min=1"`
}

func (h *Handler) SyncAnalytics(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req syncAnalyticsRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide platforms to sync")
		return
	}

	connected := map[string]bool{}
	for _, p := range user.ConnectedPlatforms() {
		connected[p] = true
	}

	var invalid []string
	wantAll := false
	real := make([]string, 0, len(req.Platforms))
	for _, p := range req.Platforms {
		if p == models.PlatformAll {
			wantAll = true
			continue
		}
		if !connected[p] {
			invalid = append(invalid, p)
			continue
		}
		real = append(real, p)
	}
	if len(invalid) > 0 {
		writeError(w, http.StatusBadRequest, "Platforms not connected: "+strings.Join(invalid, ", "))
		return
	}

	results := h.sync.SyncAll(r.Context(), user.ID, real)

	now := time.Now().UTC()
	for _, res := range results {
		if !res.Success {
			continue
		}
		if i := user.FindAccount(res.Platform); i != -1 {
			user.SocialAccounts[i].LastSynced = now
		}
	}

	if wantAll {
		day := now.Truncate(24 * time.Hour)
		snaps, err := h.store().snapshotsForDay(r.Context(), user.ID, day)
		if err != nil {
			serverError(w, err)
			return
		}
		if merged := aggregate.MergeSnapshots(snaps, now); merged != nil {
			if err := h.store().SaveSnapshot(r.Context(), merged); err != nil {
				serverError(w, err)
				return
			}
			results = append(results, platformsync.SyncResult{
				Platform: models.PlatformAll, Success: true, LastUpdated: now,
			})
		}
	}

	if err := h.saveSocialAccounts(r.Context(), user); err != nil {
		serverError(w, err)
		return
	}

	h.emitEvent(user.ID, realtimeEvent{Type: "analytics.synced"})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Analytics data synced successfully",
		"results": results,
	})
}
