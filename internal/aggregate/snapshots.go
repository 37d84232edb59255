package aggregate

import (
	"time"

	"github.com/unisphere-app/backend/internal/models"
)

// GrowthRate returns the follower growth between two snapshots as a
// percentage of the previous count, 0 when there is no previous snapshot or
// its follower count is 0.
func GrowthRate(current, previous *models.Snapshot) float64 {
	if current == nil || previous == nil {
		return 0
	}
	prev := previous.Metrics.Followers.Count
	if prev == 0 {
		return 0
	}
	return float64(current.Metrics.Followers.Count-prev) / float64(prev) * 100
}

// ChangePercentage returns change as a percentage of the previous value,
// 0 when the previous value is 0 or negative.
func ChangePercentage(change, previous int) float64 {
	if previous <= 0 {
		return 0
	}
	return float64(change) / float64(previous) * 100
}

// MergeSnapshots folds per-platform snapshots of the same day into the
// synthetic "all" snapshot: count metrics are summed, rate metrics averaged,
// and the followers changePercentage recomputed against the aggregated
// baseline (count minus change), 0 when that baseline is not positive.
//
// The audience and content-performance blocks are taken verbatim from the
// first snapshot rather than merged; insights are concatenated. A real merge
// would land here if genuine platform data ever feeds this path.
func MergeSnapshots(snaps []models.Snapshot, now time.Time) *models.Snapshot {
	if len(snaps) == 0 {
		return nil
	}

	var m models.Metrics
	for _, s := range snaps {
		m.Followers.Count += s.Metrics.Followers.Count
		m.Followers.Change += s.Metrics.Followers.Change
		m.Impressions.Count += s.Metrics.Impressions.Count
		m.Impressions.Change += s.Metrics.Impressions.Change
		m.Reach.Count += s.Metrics.Reach.Count
		m.Reach.Change += s.Metrics.Reach.Change
		m.ProfileViews.Count += s.Metrics.ProfileViews.Count
		m.ProfileViews.Change += s.Metrics.ProfileViews.Change
		m.ContentCount.Count += s.Metrics.ContentCount.Count
		m.ContentCount.Change += s.Metrics.ContentCount.Change
		m.Engagement.Rate += s.Metrics.Engagement.Rate
		m.Engagement.Change += s.Metrics.Engagement.Change
	}
	n := float64(len(snaps))
	m.Engagement.Rate /= n
	m.Engagement.Change /= n

	m.Followers.ChangePercentage = ChangePercentage(
		m.Followers.Change, m.Followers.Count-m.Followers.Change)

	insights := make([]models.Insight, 0, len(snaps)*3)
	for _, s := range snaps {
		insights = append(insights, s.Insights...)
	}

	return &models.Snapshot{
		UserID:             snaps[0].UserID,
		Platform:           models.PlatformAll,
		Date:               snaps[0].Date,
		Metrics:            m,
		Audience:           snaps[0].Audience,
		ContentPerformance: snaps[0].ContentPerformance,
		Insights:           insights,
		LastUpdated:        now,
	}
}
