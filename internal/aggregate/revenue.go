package aggregate

import (
	"sort"

	"github.com/unisphere-app/backend/internal/models"
)

// revenuePlatforms are the recognized byPlatform buckets; anything else
// lands in "other".
var revenuePlatforms = []string{
	"instagram", "tiktok", "youtube", "twitter", "linkedin",
	"facebook", "pinterest", "website", "other",
}

// RevenueSummary folds the transaction list into a fresh summary. Only
// transactions with status "completed" contribute. The fold is
// order-independent apart from the final byMonth sort, so recomputing from
// the same transaction set always yields the same summary.
func RevenueSummary(transactions []models.Transaction) models.RevenueSummary {
	summary := models.RevenueSummary{
		ByPlatform: make(map[string]float64, len(revenuePlatforms)),
		ByMonth:    []models.MonthRevenue{},
	}
	for _, p := range revenuePlatforms {
		summary.ByPlatform[p] = 0
	}

	type monthKey struct {
		year  int
		month int
	}
	byMonth := make(map[monthKey]float64)

	for _, tx := range transactions {
		if tx.Status != models.TxCompleted {
			continue
		}
		summary.Total += tx.Amount

		switch tx.Source {
		case models.SourceProduct:
			summary.BySource.Products += tx.Amount
		case models.SourceAffiliate:
			summary.BySource.Affiliate += tx.Amount
		case models.SourceSponsorship:
			summary.BySource.Sponsorships += tx.Amount
		case models.SourceTip:
			summary.BySource.Tips += tx.Amount
		default:
			summary.BySource.Other += tx.Amount
		}

		platform := "other"
		if tx.Platform != nil {
			if _, ok := summary.ByPlatform[*tx.Platform]; ok {
				platform = *tx.Platform
			}
		}
		summary.ByPlatform[platform] += tx.Amount

		key := monthKey{year: tx.Date.Year(), month: int(tx.Date.Month())}
		byMonth[key] += tx.Amount
	}

	for key, amount := range byMonth {
		summary.ByMonth = append(summary.ByMonth, models.MonthRevenue{
			Month:  key.month,
			Year:   key.year,
			Amount: amount,
		})
	}
	sort.Slice(summary.ByMonth, func(i, j int) bool {
		a, b := summary.ByMonth[i], summary.ByMonth[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	return summary
}
