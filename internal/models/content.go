package models

import "time"

// Content lifecycle statuses.
const (
	ContentDraft     = "draft"
	ContentScheduled = "scheduled"
	ContentPublished = "published"
	ContentFailed    = "failed"
)

// Per-platform publication statuses.
const (
	PlatformPending   = "pending"
	PlatformPublished = "published"
	PlatformFailed    = "failed"
)

var ContentTypes = []string{"post", "video", "story", "reel"}

func ValidContentType(t string) bool {
	for _, v := range ContentTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Content struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	Title        string         `json:"title"`
	ContentType  string         `json:"contentType"`
	Caption      string         `json:"caption"`
	Hashtags     []string       `json:"hashtags"`
	MediaURLs    []string       `json:"mediaUrls"`
	Platforms    []string       `json:"platforms"`
	ScheduledFor *time.Time     `json:"scheduledFor"`
	Status       string         `json:"status"`
	PlatformData []PlatformData `json:"platformData"`
	AIGenerated  bool           `json:"aiGenerated"`
	AIPrompt     *string        `json:"aiPrompt,omitempty"`
	AIModel      *string        `json:"aiModel,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// PlatformData is the embedded per-platform publication sub-record.
type PlatformData struct {
	Platform     string           `json:"platform"`
	PostID       *string          `json:"postId,omitempty"`
	PostURL      *string          `json:"postUrl,omitempty"`
	Status       string           `json:"status"`
	PublishedAt  *time.Time       `json:"publishedAt,omitempty"`
	ErrorMessage *string          `json:"errorMessage,omitempty"`
	Analytics    PlatformCounters `json:"analytics"`
}

type PlatformCounters struct {
	Likes       int       `json:"likes"`
	Comments    int       `json:"comments"`
	Shares      int       `json:"shares"`
	Saves       int       `json:"saves"`
	Impressions int       `json:"impressions"`
	Reach       int       `json:"reach"`
	Engagement  float64   `json:"engagement"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// EngagementRate returns (likes+comments+shares+saves)/impressions*100 for
// the given platform, 0 when impressions is zero or the platform has no
// sub-record.
func (c *Content) EngagementRate(platform string) float64 {
	for i := range c.PlatformData {
		if c.PlatformData[i].Platform == platform {
			a := c.PlatformData[i].Analytics
			if a.Impressions == 0 {
				return 0
			}
			interactions := a.Likes + a.Comments + a.Shares + a.Saves
			return float64(interactions) / float64(a.Impressions) * 100
		}
	}
	return 0
}

// NewPlatformData seeds a pending sub-record per target platform.
func NewPlatformData(platforms []string) []PlatformData {
	out := make([]PlatformData, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, PlatformData{Platform: p, Status: PlatformPending})
	}
	return out
}

// ReconcilePlatformData diffs the new platform list against the existing
// sub-records: sub-records for kept platforms are carried over untouched,
// added platforms get a fresh pending sub-record, and sub-records for
// removed platforms are dropped. Order follows the new platform list.
func ReconcilePlatformData(old []PlatformData, platforms []string) []PlatformData {
	byPlatform := make(map[string]PlatformData, len(old))
	for _, pd := range old {
		byPlatform[pd.Platform] = pd
	}
	out := make([]PlatformData, 0, len(platforms))
	for _, p := range platforms {
		if pd, ok := byPlatform[p]; ok {
			out = append(out, pd)
			continue
		}
		out = append(out, PlatformData{Platform: p, Status: PlatformPending})
	}
	return out
}

// DeriveStatus maps a creation request to the initial lifecycle status.
func DeriveStatus(scheduledFor *time.Time) string {
	if scheduledFor != nil {
		return ContentScheduled
	}
	return ContentDraft
}
