package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/unisphere-app/backend/internal/models"
)

func snapshotColumnNames() []string {
	return []string{
		"id", "user_id", "platform", "date", "metrics", "audience",
		"content_performance", "insights", "last_updated",
	}
}

func addSnapshotRow(rows *sqlmock.Rows, id, platform string, date time.Time, metrics string) *sqlmock.Rows {
	return rows.AddRow(id, "u1", platform, date, []byte(metrics),
		[]byte(`{}`), []byte(`{}`), []byte(`[]`), date.Add(8*time.Hour))
}

func TestGetAnalyticsOverview_NoData(t *testing.T) {
	h, mock, done := newTestHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id, platform`).
		WithArgs("u1", "all").
		WillReturnError(sql.ErrNoRows)

	rr := httptest.NewRecorder()
	h.GetAnalyticsOverview(rr, authedRequest(http.MethodGet, "/api/v1/analytics/overview", "", testUser()))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%q", rr.Code, rr.Body.String())
	}
	out := decodeBody(t, rr)
	if out["message"] != "No analytics data available yet" {
		t.Fatalf("unexpected message %#v", out)
	}
	if out["data"] != nil {
		t.Fatalf("expected null data got %#v", out["data"])
	}
}

func TestGetAnalyticsOverview_WithHistory(t *testing.T) {
	h, mock, done := newTestHandler(t)
	defer done()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	latestMetrics := `{"followers":{"count":1100,"change":100,"changePercentage":10},
		"engagement":{"rate":5,"change":0.2},"impressions":{"count":8000,"change":500},
		"reach":{"count":3000,"change":100}}`
	oldMetrics := `{"followers":{"count":1000},"engagement":{"rate":4},
		"impressions":{"count":7000},"reach":{"count":2500}}`

	mock.ExpectQuery(`SELECT id, user_id, platform`).
		WithArgs("u1", "instagram").
		WillReturnRows(addSnapshotRow(sqlmock.NewRows(snapshotColumnNames()),
			"s2", "instagram", today, latestMetrics))

	history := sqlmock.NewRows(snapshotColumnNames())
	addSnapshotRow(history, "s1", "instagram", today.Add(-24*time.Hour), oldMetrics)
	addSnapshotRow(history, "s2", "instagram", today, latestMetrics)
	mock.ExpectQuery(`SELECT id, user_id, platform`).
		WillReturnRows(history)

	rr := httptest.NewRecorder()
	h.GetAnalyticsOverview(rr, authedRequest(http.MethodGet,
		"/api/v1/analytics/overview?platform=instagram&period=7d", "", testUser()))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%q", rr.Code, rr.Body.String())
	}
	out := decodeBody(t, rr)
	data, _ := out["data"].(map[string]any)
	overview, _ := data["overview"].(map[string]any)
	followers, _ := overview["followers"].(map[string]any)
	if followers["count"] != float64(1100) {
		t.Fatalf("unexpected follower count %#v", followers)
	}
	// vs the 1000-follower baseline at the start of the window
	if followers["growthRate"] != float64(10) {
		t.Fatalf("unexpected growth rate %#v", followers)
	}
	historical, _ := data["historicalData"].([]any)
	if len(historical) != 2 {
		t.Fatalf("expected 2 history points got %#v", historical)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

func TestGetAudienceDemographics_NoData(t *testing.T) {
	h, mock, done := newTestHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id, platform`).
		WithArgs("u1", "all").
		WillReturnError(sql.ErrNoRows)

	rr := httptest.NewRecorder()
	h.GetAudienceDemographics(rr, authedRequest(http.MethodGet, "/api/v1/analytics/audience", "", testUser()))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%q", rr.Code, rr.Body.String())
	}
	if out := decodeBody(t, rr); out["message"] != "No audience data available yet" {
		t.Fatalf("unexpected message %#v", out)
	}
}

func TestSyncAnalytics_NotConnected(t *testing.T) {
	h, _, done := newTestHandler(t)
	defer done()

	u := testUser()
	u.SocialAccounts = []models.SocialAccount{
		{Platform: "instagram", IsConnected: true},
	}

	body := `{"platforms":["instagram","tiktok","youtube"]}`
	rr := httptest.NewRecorder()
	h.SyncAnalytics(rr, authedRequest(http.MethodPost, "/api/v1/analytics/sync", body, u))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%q", rr.Code, rr.Body.String())
	}
	if out := decodeBody(t, rr); out["error"] != "Platforms not connected: tiktok, youtube" {
		t.Fatalf("unexpected error %#v", out)
	}
}

func TestSyncAnalytics_MissingPlatforms(t *testing.T) {
	h, _, done := newTestHandler(t)
	defer done()

	rr := httptest.NewRecorder()
	h.SyncAnalytics(rr, authedRequest(http.MethodPost, "/api/v1/analytics/sync", `{"platforms":[]}`, testUser()))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if out := decodeBody(t, rr); out["error"] != "Please provide platforms to sync" {
		t.Fatalf("unexpected error %#v", out)
	}
}

func TestSyncAnalytics_ConnectedPlatform(t *testing.T) {
	h, mock, done := newTestHandler(t)
	defer done()

	u := testUser()
	u.SocialAccounts = []models.SocialAccount{
		{Platform: "instagram", IsConnected: true},
	}

	// No snapshot yet today, no previous baseline, then the save.
	mock.ExpectQuery(`SELECT id, user_id, platform`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id, user_id, platform`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO public\.analytics_snapshots`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE public\.users SET social_accounts`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"platforms":["instagram"]}`
	rr := httptest.NewRecorder()
	h.SyncAnalytics(rr, authedRequest(http.MethodPost, "/api/v1/analytics/sync", body, u))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%q", rr.Code, rr.Body.String())
	}
	out := decodeBody(t, rr)
	if out["message"] != "Analytics data synced successfully" {
		t.Fatalf("unexpected message %#v", out)
	}
	results, _ := out["results"].([]any)
	if len(results) != 1 {
		t.Fatalf("expected 1 result got %#v", results)
	}
	first, _ := results[0].(map[string]any)
	if first["platform"] != "instagram" || first["success"] != true {
		t.Fatalf("unexpected result %#v", first)
	}
	if u.SocialAccounts[0].LastSynced.IsZero() {
		t.Fatalf("expected lastSynced stamped")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

func TestPeriodStart(t *testing.T) {
	end := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"7d":      end.AddDate(0, 0, -7),
		"90d":     end.AddDate(0, 0, -90),
		"1y":      end.AddDate(-1, 0, 0),
		"30d":     end.AddDate(0, 0, -30),
		"":        end.AddDate(0, 0, -30),
		"unknown": end.AddDate(0, 0, -30),
	}
	for period, want := range cases {
		if got := periodStart(period, end); !got.Equal(want) {
			t.Fatalf("period %q: expected %v got %v", period, want, got)
		}
	}
}
