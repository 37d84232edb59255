package models

import "time"

// Strategy statuses.
const (
	StrategySuggested  = "suggested"
	StrategyInProgress = "in_progress"
	StrategyCompleted  = "completed"
	StrategyDismissed  = "dismissed"
)

// Collaboration statuses.
const (
	CollabSuggested  = "suggested"
	CollabContacted  = "contacted"
	CollabInProgress = "in_progress"
	CollabCompleted  = "completed"
	CollabRejected   = "rejected"
)

// Trending topic statuses.
const (
	TopicActive   = "active"
	TopicArchived = "archived"
)

// GrowthRecord holds a user's growth planning sub-lists. One record exists
// per user, created lazily on first access.
type GrowthRecord struct {
	ID                 string              `json:"id"`
	UserID             string              `json:"userId"`
	Strategies         []Strategy          `json:"strategies"`
	Collaborations     []Collaboration     `json:"collaborations"`
	TrendingTopics     []TrendingTopic     `json:"trendingTopics"`
	HashtagCollections []HashtagCollection `json:"hashtagCollections"`
	LastUpdated        time.Time           `json:"lastUpdated"`
}

type Strategy struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Difficulty     string         `json:"difficulty"`
	Impact         string         `json:"impact"`
	Platforms      []string       `json:"platforms"`
	Status         string         `json:"status"`
	StartDate      *time.Time     `json:"startDate,omitempty"`
	CompletionDate *time.Time     `json:"completionDate,omitempty"`
	Results        map[string]any `json:"results,omitempty"`
	AIGenerated    bool           `json:"aiGenerated"`
	CreatedAt      time.Time      `json:"createdAt"`
}

type Collaboration struct {
	ID             string     `json:"id"`
	CreatorID      *string    `json:"creatorId,omitempty"`
	Name           string     `json:"name"`
	Handle         string     `json:"handle"`
	Platform       string     `json:"platform"`
	Followers      int        `json:"followers"`
	Niche          string     `json:"niche"`
	Match          string     `json:"match"`
	Status         string     `json:"status"`
	ContactDate    *time.Time `json:"contactDate,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	ContentID      *string    `json:"contentId,omitempty"`
	AIGenerated    bool       `json:"aiGenerated"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type TrendingTopic struct {
	ID             string     `json:"id"`
	Topic          string     `json:"topic"`
	Growth         string     `json:"growth"`
	Relevance      string     `json:"relevance"`
	Platforms      []string   `json:"platforms"`
	Status         string     `json:"status"`
	ContentCreated bool       `json:"contentCreated"`
	ContentID      *string    `json:"contentId,omitempty"`
	AIGenerated    bool       `json:"aiGenerated"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the topic's expiry has passed at the given time.
// Topics without an expiry never expire.
func (t *TrendingTopic) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(now)
}

type HashtagCollection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Hashtags    []string  `json:"hashtags"`
	Reach       string    `json:"reach"`
	Relevance   string    `json:"relevance"`
	Platforms   []string  `json:"platforms"`
	UsageCount  int       `json:"usageCount"`
	AIGenerated bool      `json:"aiGenerated"`
	CreatedAt   time.Time `json:"createdAt"`
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// HasPlatform reports platform membership for filter queries.
func (s *Strategy) HasPlatform(p string) bool          { return containsString(s.Platforms, p) }
func (t *TrendingTopic) HasPlatform(p string) bool     { return containsString(t.Platforms, p) }
func (h *HashtagCollection) HasPlatform(p string) bool { return containsString(h.Platforms, p) }
