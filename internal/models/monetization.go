package models

import "time"

// Transaction sources.
const (
	SourceProduct     = "product"
	SourceAffiliate   = "affiliate"
	SourceSponsorship = "sponsorship"
	SourceTip         = "tip"
	SourceOther       = "other"
)

// Transaction statuses.
const (
	TxPending   = "pending"
	TxCompleted = "completed"
	TxFailed    = "failed"
	TxRefunded  = "refunded"
)

// Ledger is a user's monetization document: products, affiliate links,
// sponsorships and transactions, with a derived revenue summary. One ledger
// exists per user, created lazily.
type Ledger struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Products       []Product       `json:"products"`
	AffiliateLinks []AffiliateLink `json:"affiliateLinks"`
	Sponsorships   []Sponsorship   `json:"sponsorships"`
	Transactions   []Transaction   `json:"transactions"`
	RevenueSummary RevenueSummary  `json:"revenueSummary"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Type        string    `json:"type"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	DownloadURL *string   `json:"downloadUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	Sales       int       `json:"sales"`
	Revenue     float64   `json:"revenue"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AffiliateLink struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Platform     string    `json:"platform"`
	URL          string    `json:"url"`
	TrackingCode *string   `json:"trackingCode,omitempty"`
	Commission   float64   `json:"commission"`
	Clicks       int       `json:"clicks"`
	Conversions  int       `json:"conversions"`
	Revenue      float64   `json:"revenue"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Sponsorship struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Brand        string     `json:"brand"`
	Description  *string    `json:"description,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Value        float64    `json:"value"`
	Status       string     `json:"status"`
	Deliverables []string   `json:"deliverables"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type Transaction struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	SourceID      *string   `json:"sourceId,omitempty"`
	Amount        float64   `json:"amount"`
	Platform      *string   `json:"platform,omitempty"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	PaymentMethod *string   `json:"paymentMethod,omitempty"`
	CustomerEmail *string   `json:"customerEmail,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

type RevenueSummary struct {
	Total      float64            `json:"total"`
	BySource   RevenueBySource    `json:"bySource"`
	ByPlatform map[string]float64 `json:"byPlatform"`
	ByMonth    []MonthRevenue     `json:"byMonth"`
}

type RevenueBySource struct {
	Products     float64 `json:"products"`
	Affiliate    float64 `json:"affiliate"`
	Sponsorships float64 `json:"sponsorships"`
	Tips         float64 `json:"tips"`
	Other        float64 `json:"other"`
}

type MonthRevenue struct {
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}
