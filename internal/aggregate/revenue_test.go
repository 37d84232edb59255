package aggregate

import (
	"testing"
	"time"

	"github.com/unisphere-app/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestRevenueSummary_Empty(t *testing.T) {
	sum := RevenueSummary(nil)

	if sum.Total != 0 {
		t.Fatalf("expected total 0 got %v", sum.Total)
	}
	if sum.ByPlatform == nil || sum.ByMonth == nil {
		t.Fatalf("expected initialized buckets got %#v", sum)
	}
	if sum.ByPlatform["instagram"] != 0 {
		t.Fatalf("expected zeroed platform buckets got %#v", sum.ByPlatform)
	}
	if len(sum.ByMonth) != 0 {
		t.Fatalf("expected empty byMonth got %#v", sum.ByMonth)
	}
}

func TestRevenueSummary_CompletedOnly(t *testing.T) {
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{ID: "t1", Source: models.SourceProduct, Amount: 100, Platform: strPtr("instagram"), Date: date, Status: models.TxCompleted},
		{ID: "t2", Source: models.SourceTip, Amount: 50, Date: date, Status: models.TxPending},
	}

	sum := RevenueSummary(txs)

	if sum.Total != 100 {
		t.Fatalf("expected total 100 got %v", sum.Total)
	}
	if sum.BySource.Products != 100 {
		t.Fatalf("expected products 100 got %v", sum.BySource.Products)
	}
	if sum.BySource.Tips != 0 {
		t.Fatalf("expected tips 0 got %v", sum.BySource.Tips)
	}
	if sum.ByPlatform["instagram"] != 100 {
		t.Fatalf("expected instagram 100 got %v", sum.ByPlatform["instagram"])
	}
	if len(sum.ByMonth) != 1 || sum.ByMonth[0].Amount != 100 {
		t.Fatalf("expected one month bucket of 100 got %#v", sum.ByMonth)
	}
}

func TestRevenueSummary_UnknownPlatformFallsBackToOther(t *testing.T) {
	date := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{ID: "t1", Source: models.SourceOther, Amount: 25, Platform: strPtr("myspace"), Date: date, Status: models.TxCompleted},
		{ID: "t2", Source: models.SourceAffiliate, Amount: 10, Date: date, Status: models.TxCompleted},
	}

	sum := RevenueSummary(txs)

	if sum.ByPlatform["other"] != 35 {
		t.Fatalf("expected other 35 got %v", sum.ByPlatform["other"])
	}
	if sum.BySource.Other != 25 || sum.BySource.Affiliate != 10 {
		t.Fatalf("unexpected bySource %#v", sum.BySource)
	}
}

func TestRevenueSummary_ByMonthSorted(t *testing.T) {
	txs := []models.Transaction{
		{ID: "t1", Source: models.SourceProduct, Amount: 10, Status: models.TxCompleted,
			Date: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "t2", Source: models.SourceProduct, Amount: 20, Status: models.TxCompleted,
			Date: time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "t3", Source: models.SourceProduct, Amount: 30, Status: models.TxCompleted,
			Date: time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC)},
	}

	sum := RevenueSummary(txs)

	if len(sum.ByMonth) != 2 {
		t.Fatalf("expected 2 month buckets got %#v", sum.ByMonth)
	}
	first := sum.ByMonth[0]
	if first.Year != 2024 || first.Month != 12 || first.Amount != 20 {
		t.Fatalf("expected 2024-12=20 first got %#v", first)
	}
	second := sum.ByMonth[1]
	if second.Year != 2025 || second.Month != 2 || second.Amount != 40 {
		t.Fatalf("expected 2025-02=40 second got %#v", second)
	}
}

func TestRevenueSummary_Deterministic(t *testing.T) {
	date := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{ID: "a", Source: models.SourceSponsorship, Amount: 500, Platform: strPtr("youtube"), Date: date, Status: models.TxCompleted},
		{ID: "b", Source: models.SourceTip, Amount: 5, Platform: strPtr("tiktok"), Date: date, Status: models.TxCompleted},
		{ID: "c", Source: models.SourceProduct, Amount: 40, Date: date, Status: models.TxRefunded},
	}
	reversed := []models.Transaction{txs[2], txs[1], txs[0]}

	a := RevenueSummary(txs)
	b := RevenueSummary(reversed)

	if a.Total != b.Total || a.Total != 505 {
		t.Fatalf("expected total 505 both ways got %v and %v", a.Total, b.Total)
	}
	if a.BySource != b.BySource {
		t.Fatalf("expected identical bySource got %#v vs %#v", a.BySource, b.BySource)
	}
	if a.ByPlatform["youtube"] != 500 || b.ByPlatform["tiktok"] != 5 {
		t.Fatalf("unexpected byPlatform %#v / %#v", a.ByPlatform, b.ByPlatform)
	}
}
