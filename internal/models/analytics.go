package models

import "time"

// PlatformAll is the synthetic platform value for the cross-platform
// aggregate snapshot.
const PlatformAll = "all"

// Snapshot is a dated per-platform analytics rollup. At most one exists per
// (user, platform, day); history accumulates over time.
type Snapshot struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"userId"`
	Platform           string             `json:"platform"`
	Date               time.Time          `json:"date"`
	Metrics            Metrics            `json:"metrics"`
	Audience           AudienceData       `json:"audienceData"`
	ContentPerformance ContentPerformance `json:"contentPerformance"`
	Insights           []Insight          `json:"growthInsights"`
	LastUpdated        time.Time          `json:"lastUpdated"`
}

type Metrics struct {
	Followers    CountMetric `json:"followers"`
	Engagement   RateMetric  `json:"engagement"`
	Impressions  CountMetric `json:"impressions"`
	Reach        CountMetric `json:"reach"`
	ProfileViews CountMetric `json:"profileViews"`
	ContentCount CountMetric `json:"contentCount"`
}

type CountMetric struct {
	Count            int     `json:"count"`
	Change           int     `json:"change"`
	ChangePercentage float64 `json:"changePercentage"`
}

type RateMetric struct {
	Rate   float64 `json:"rate"`
	Change float64 `json:"change"`
}

type AudienceData struct {
	Demographics Demographics   `json:"demographics"`
	Interests    []PercentSlice `json:"interests"`
	ActiveHours  []HourActivity `json:"activeHours"`
	ActiveDays   []DayActivity  `json:"activeDays"`
}

type Demographics struct {
	AgeRanges []PercentSlice `json:"ageRanges"`
	Genders   []PercentSlice `json:"genders"`
	Locations []PercentSlice `json:"locations"`
}

// PercentSlice is one labeled share of an audience breakdown.
type PercentSlice struct {
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
}

type HourActivity struct {
	Hour     int `json:"hour"`
	Activity int `json:"activity"`
}

type DayActivity struct {
	Day      string `json:"day"`
	Activity int    `json:"activity"`
}

type ContentPerformance struct {
	ByType        []TypePerformance `json:"byType"`
	ByTime        []TimePerformance `json:"byTime"`
	TopPerforming []TopContent      `json:"topPerforming"`
}

type TypePerformance struct {
	Type           string  `json:"type"`
	EngagementRate float64 `json:"engagementRate"`
	Count          int     `json:"count"`
}

type TimePerformance struct {
	Hour           int     `json:"hour"`
	EngagementRate float64 `json:"engagementRate"`
	Count          int     `json:"count"`
}

type TopContent struct {
	ContentID      string  `json:"contentId"`
	EngagementRate float64 `json:"engagementRate"`
	Impressions    int     `json:"impressions"`
	Reach          int     `json:"reach"`
}

type Insight struct {
	Type           string  `json:"type"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Metric         string  `json:"metric"`
	Value          float64 `json:"value"`
	Recommendation string  `json:"recommendation"`
}
