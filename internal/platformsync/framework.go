package platformsync

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/unisphere-app/backend/internal/models"
	"golang.org/x/time/rate"
)

// Store is the snapshot persistence surface the runner needs.
type Store interface {
	// SnapshotForDay returns the snapshot for (user, platform, day) or nil.
	SnapshotForDay(ctx context.Context, userID, platform string, day time.Time) (*models.Snapshot, error)
	// LatestSnapshot returns the most recent snapshot for (user, platform) or nil.
	LatestSnapshot(ctx context.Context, userID, platform string) (*models.Snapshot, error)
	SaveSnapshot(ctx context.Context, snap *models.Snapshot) error
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func DefaultRateLimits() map[string]RateLimitConfig {
	// Conservative defaults; override via env per platform to match each
	// network's quota policy once real APIs are wired in.
	return map[string]RateLimitConfig{
		"instagram": {RequestsPerSecond: 1, Burst: 2},
		"tiktok":    {RequestsPerSecond: 1, Burst: 2},
		"youtube":   {RequestsPerSecond: 3, Burst: 3},
		"twitter":   {RequestsPerSecond: 1, Burst: 1},
		"linkedin":  {RequestsPerSecond: 1, Burst: 2},
		"facebook":  {RequestsPerSecond: 1, Burst: 2},
		"pinterest": {RequestsPerSecond: 1, Burst: 2},
	}
}

func rateLimitFromEnv(platform string, def RateLimitConfig) RateLimitConfig {
	// Env vars, e.g.:
	// SNAPSHOT_SYNC_INSTAGRAM_RPS=0.5
	// SNAPSHOT_SYNC_INSTAGRAM_BURST=2
	prefix := "SNAPSHOT_SYNC_" + upper(platform) + "_"
	if v := os.Getenv(prefix + "RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			def.RequestsPerSecond = f
		}
	}
	if v := os.Getenv(prefix + "BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			def.Burst = n
		}
	}
	return def
}

// Runner drives a per-platform snapshot sync with per-platform pacing.
type Runner struct {
	Store  Store
	Logger *log.Logger
	Rand   Rand
}

func (r *Runner) EnsureDefaults() {
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	if r.Rand == nil {
		r.Rand = defaultRand()
	}
}

func (r *Runner) limiterForPlatform(platform string) (*rate.Limiter, RateLimitConfig) {
	cfg, ok := DefaultRateLimits()[platform]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 1, Burst: 1}
	}
	cfg = rateLimitFromEnv(platform, cfg)
	lim := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	return lim, cfg
}

func upper(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			out = append(out, c-32)
		} else if c == '-' {
			out = append(out, '_')
		} else {
			out = append(out, c)
		}
	}
	return string(out)
}
