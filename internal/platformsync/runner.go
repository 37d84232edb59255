package platformsync

import (
	"context"
	"time"
)

type SyncResult struct {
	Platform    string    `json:"platform"`
	Success     bool      `json:"success"`
	Skipped     bool      `json:"skipped,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
	Error       string    `json:"error,omitempty"`
}

// SyncAll refreshes the per-platform snapshots for a single user. A platform
// that already has a snapshot for today is left untouched (one snapshot per
// (user, platform, day)); otherwise a new one is synthesized from the
// previous latest snapshot and saved.
func (r *Runner) SyncAll(ctx context.Context, userID string, platforms []string) []SyncResult {
	r.EnsureDefaults()
	now := time.Now()
	out := make([]SyncResult, 0, len(platforms))
	for _, platform := range platforms {
		lim, cfg := r.limiterForPlatform(platform)
		start := time.Now()
		r.Logger.Printf("[SnapshotSync] start platform=%s userId=%s rps=%.3f burst=%d",
			platform, userID, cfg.RequestsPerSecond, cfg.Burst)

		if err := lim.Wait(ctx); err != nil {
			out = append(out, SyncResult{Platform: platform, Error: err.Error()})
			r.Logger.Printf("[SnapshotSync] canceled platform=%s userId=%s err=%v", platform, userID, err)
			continue
		}

		existing, err := r.Store.SnapshotForDay(ctx, userID, platform, now)
		if err != nil {
			out = append(out, SyncResult{Platform: platform, Error: err.Error()})
			r.Logger.Printf("[SnapshotSync] lookup failed platform=%s userId=%s err=%v", platform, userID, err)
			continue
		}
		if existing != nil {
			out = append(out, SyncResult{
				Platform: platform, Success: true, Skipped: true,
				Reason: "already_synced_today", LastUpdated: existing.LastUpdated,
			})
			r.Logger.Printf("[SnapshotSync] skip platform=%s userId=%s reason=already_synced_today", platform, userID)
			continue
		}

		prev, err := r.Store.LatestSnapshot(ctx, userID, platform)
		if err != nil {
			out = append(out, SyncResult{Platform: platform, Error: err.Error()})
			r.Logger.Printf("[SnapshotSync] baseline lookup failed platform=%s userId=%s err=%v", platform, userID, err)
			continue
		}

		snap := Synthesize(prev, userID, platform, now, r.Rand)
		if err := r.Store.SaveSnapshot(ctx, snap); err != nil {
			out = append(out, SyncResult{Platform: platform, Error: err.Error()})
			r.Logger.Printf("[SnapshotSync] save failed platform=%s userId=%s err=%v", platform, userID, err)
			continue
		}

		out = append(out, SyncResult{Platform: platform, Success: true, LastUpdated: snap.LastUpdated})
		r.Logger.Printf("[SnapshotSync] done platform=%s userId=%s dur=%s", platform, userID, time.Since(start))
	}
	return out
}
