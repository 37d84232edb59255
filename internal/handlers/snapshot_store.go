package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/unisphere-app/backend/internal/models"
)

const snapshotColumns = `id, user_id, platform, date, metrics, audience,
	content_performance, insights, last_updated`

// snapshotStore persists analytics snapshots, one row per
// (user, platform, day).
type snapshotStore struct {
	db *sql.DB
}

func scanSnapshot(row rowScanner) (*models.Snapshot, error) {
	var (
		s                  models.Snapshot
		metrics            []byte
		audience           []byte
		contentPerformance []byte
		insights           []byte
	)
	err := row.Scan(&s.ID, &s.UserID, &s.Platform, &s.Date,
		&metrics, &audience, &contentPerformance, &insights, &s.LastUpdated)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metrics, &s.Metrics); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(audience, &s.Audience); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contentPerformance, &s.ContentPerformance); err != nil {
		return nil, err
	}
	if len(insights) > 0 {
		if err := json.Unmarshal(insights, &s.Insights); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (st *snapshotStore) SnapshotForDay(ctx context.Context, userID, platform string, day time.Time) (*models.Snapshot, error) {
	row := st.db.QueryRowContext(ctx,
		"SELECT "+snapshotColumns+` FROM public.analytics_snapshots
		WHERE user_id = $1 AND platform = $2 AND date = $3`,
		userID, platform, day.UTC().Truncate(24*time.Hour))
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return snap, err
}

func (st *snapshotStore) LatestSnapshot(ctx context.Context, userID, platform string) (*models.Snapshot, error) {
	row := st.db.QueryRowContext(ctx,
		"SELECT "+snapshotColumns+` FROM public.analytics_snapshots
		WHERE user_id = $1 AND platform = $2
		ORDER BY date DESC LIMIT 1`,
		userID, platform)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return snap, err
}

func (st *snapshotStore) SaveSnapshot(ctx context.Context, snap *models.Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	query := `
		INSERT INTO public.analytics_snapshots (id, user_id, platform, date, metrics,
			audience, content_performance, insights, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, platform, date) DO UPDATE SET
			metrics = EXCLUDED.metrics,
			audience = EXCLUDED.audience,
			content_performance = EXCLUDED.content_performance,
			insights = EXCLUDED.insights,
			last_updated = EXCLUDED.last_updated
	`
	_, err := st.db.ExecContext(ctx, query,
		snap.ID, snap.UserID, snap.Platform, snap.Date,
		jsonb(snap.Metrics), jsonb(snap.Audience), jsonb(snap.ContentPerformance),
		jsonb(snap.Insights), snap.LastUpdated)
	return err
}

// snapshotsForRange returns the snapshots for (user, platform) within
// [start, end], oldest first.
func (st *snapshotStore) snapshotsForRange(ctx context.Context, userID, platform string, start, end time.Time) ([]models.Snapshot, error) {
	rows, err := st.db.QueryContext(ctx,
		"SELECT "+snapshotColumns+` FROM public.analytics_snapshots
		WHERE user_id = $1 AND platform = $2 AND date >= $3 AND date <= $4
		ORDER BY date ASC`,
		userID, platform, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	return out, rows.Err()
}

// snapshotsForDay returns every real platform's snapshot for the day,
// excluding the aggregate row.
func (st *snapshotStore) snapshotsForDay(ctx context.Context, userID string, day time.Time) ([]models.Snapshot, error) {
	rows, err := st.db.QueryContext(ctx,
		"SELECT "+snapshotColumns+` FROM public.analytics_snapshots
		WHERE user_id = $1 AND date = $2 AND platform <> $3
		ORDER BY platform ASC`,
		userID, day.UTC().Truncate(24*time.Hour), models.PlatformAll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	return out, rows.Err()
}
