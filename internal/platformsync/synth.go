package platformsync

import (
	"math/rand"
	"time"

	"github.com/unisphere-app/backend/internal/aggregate"
	"github.com/unisphere-app/backend/internal/models"
)

// Rand is the randomness used by the mock synthesizer; injected so tests
// can pin it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

func defaultRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

const baselineFollowers = 1000

// Synthesize builds today's snapshot for a platform from the previous
// latest snapshot, applying bounded random deltas to each metric. This
// stands in for the platform APIs until a real integration exists.
func Synthesize(prev *models.Snapshot, userID, platform string, now time.Time, rnd Rand) *models.Snapshot {
	prevFollowers := baselineFollowers
	if prev != nil {
		prevFollowers = prev.Metrics.Followers.Count
	}
	followerChange := rnd.Intn(50) - 10 // -10 to +39
	followerCount := prevFollowers + followerChange

	metrics := models.Metrics{
		Followers: models.CountMetric{
			Count:            followerCount,
			Change:           followerChange,
			ChangePercentage: aggregate.ChangePercentage(followerChange, prevFollowers),
		},
		Engagement: models.RateMetric{
			Rate:   rnd.Float64()*5 + 1,   // 1-6%
			Change: rnd.Float64()*0.6 - 0.3, // -0.3 to +0.3
		},
		Impressions:  countMetric(rnd.Intn(5000)+1000, rnd.Intn(1000)-200),
		Reach:        countMetric(rnd.Intn(3000)+500, rnd.Intn(600)-100),
		ProfileViews: countMetric(rnd.Intn(500)+100, rnd.Intn(100)-20),
		ContentCount: countMetric(rnd.Intn(20)+5, rnd.Intn(5)-1),
	}

	return &models.Snapshot{
		UserID:             userID,
		Platform:           platform,
		Date:               now.UTC().Truncate(24 * time.Hour),
		Metrics:            metrics,
		Audience:           synthAudience(rnd),
		ContentPerformance: synthContentPerformance(rnd),
		Insights:           synthInsights(),
		LastUpdated:        now,
	}
}

func countMetric(count, change int) models.CountMetric {
	return models.CountMetric{
		Count:            count,
		Change:           change,
		ChangePercentage: aggregate.ChangePercentage(change, count-change),
	}
}

func synthAudience(rnd Rand) models.AudienceData {
	hours := make([]models.HourActivity, 24)
	for i := range hours {
		hours[i] = models.HourActivity{Hour: i, Activity: rnd.Intn(100)}
	}
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	activeDays := make([]models.DayActivity, 0, len(days))
	for _, d := range days {
		activeDays = append(activeDays, models.DayActivity{Day: d, Activity: rnd.Intn(100)})
	}
	return models.AudienceData{
		Demographics: models.Demographics{
			AgeRanges: []models.PercentSlice{
				{Label: "18-24", Percentage: 25 + rnd.Float64()*10},
				{Label: "25-34", Percentage: 35 + rnd.Float64()*10},
				{Label: "35-44", Percentage: 20 + rnd.Float64()*10},
				{Label: "45-54", Percentage: 10 + rnd.Float64()*5},
				{Label: "55+", Percentage: 5 + rnd.Float64()*5},
			},
			Genders: []models.PercentSlice{
				{Label: "Female", Percentage: 55 + rnd.Float64()*10},
				{Label: "Male", Percentage: 40 + rnd.Float64()*10},
				{Label: "Other", Percentage: 5 + rnd.Float64()*2},
			},
			Locations: []models.PercentSlice{
				{Label: "United States", Percentage: 40 + rnd.Float64()*10},
				{Label: "United Kingdom", Percentage: 15 + rnd.Float64()*5},
				{Label: "Canada", Percentage: 10 + rnd.Float64()*5},
				{Label: "Australia", Percentage: 8 + rnd.Float64()*4},
				{Label: "Germany", Percentage: 7 + rnd.Float64()*3},
				{Label: "Other", Percentage: 20 + rnd.Float64()*5},
			},
		},
		Interests: []models.PercentSlice{
			{Label: "Fashion", Percentage: 30 + rnd.Float64()*10},
			{Label: "Travel", Percentage: 25 + rnd.Float64()*10},
			{Label: "Fitness", Percentage: 20 + rnd.Float64()*10},
			{Label: "Food", Percentage: 15 + rnd.Float64()*5},
			{Label: "Technology", Percentage: 10 + rnd.Float64()*5},
		},
		ActiveHours: hours,
		ActiveDays:  activeDays,
	}
}

func synthContentPerformance(rnd Rand) models.ContentPerformance {
	byTime := make([]models.TimePerformance, 24)
	for i := range byTime {
		byTime[i] = models.TimePerformance{
			Hour:           i,
			EngagementRate: rnd.Float64()*6 + 1,
			Count:          rnd.Intn(5) + 1,
		}
	}
	return models.ContentPerformance{
		ByType: []models.TypePerformance{
			{Type: "post", EngagementRate: rnd.Float64()*5 + 1, Count: rnd.Intn(10) + 5},
			{Type: "video", EngagementRate: rnd.Float64()*7 + 3, Count: rnd.Intn(8) + 2},
			{Type: "story", EngagementRate: rnd.Float64()*4 + 1, Count: rnd.Intn(15) + 10},
			{Type: "reel", EngagementRate: rnd.Float64()*8 + 4, Count: rnd.Intn(6) + 1},
		},
		ByTime:        byTime,
		TopPerforming: []models.TopContent{},
	}
}

func synthInsights() []models.Insight {
	return []models.Insight{
		{
			Type:           "positive",
			Title:          "Engagement Increase",
			Description:    "Your engagement rate has increased by 15% in the last week.",
			Metric:         "engagement",
			Value:          15,
			Recommendation: "Continue posting similar content to maintain this growth trend.",
		},
		{
			Type:           "opportunity",
			Title:          "Optimal Posting Time",
			Description:    "Your audience is most active between 6-8PM, but you're posting mostly in the morning.",
			Metric:         "timing",
			Value:          0,
			Recommendation: "Try scheduling more posts for the evening hours to reach more of your audience.",
		},
		{
			Type:           "negative",
			Title:          "Declining Reach",
			Description:    "Your reach has decreased by 8% compared to last month.",
			Metric:         "reach",
			Value:          -8,
			Recommendation: "Experiment with more hashtags and engage with larger accounts to increase visibility.",
		},
	}
}
