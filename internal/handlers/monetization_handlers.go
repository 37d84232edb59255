package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/unisphere-app/backend/internal/aggregate"
	"github.com/unisphere-app/backend/internal/middleware"
	"github.com/unisphere-app/backend/internal/models"
)

// loadLedger fetches the caller's monetization ledger, creating an empty one
// on first access.
func (h *Handler) loadLedger(ctx context.Context, userID string) (*models.Ledger, error) {
	var (
		led            models.Ledger
		products       []byte
		affiliateLinks []byte
		sponsorships   []byte
		transactions   []byte
		revenueSummary []byte
	)
	query := `
		SELECT id, user_id, products, affiliate_links, sponsorships, transactions,
			revenue_summary, last_updated
		FROM public.monetization_ledgers WHERE user_id = $1
	`
	err := h.db.QueryRowContext(ctx, query, userID).Scan(
		&led.ID, &led.UserID, &products, &affiliateLinks, &sponsorships,
		&transactions, &revenueSummary, &led.LastUpdated)
	if err == sql.ErrNoRows {
		led = models.Ledger{
			ID:             uuid.NewString(),
			UserID:         userID,
			RevenueSummary: aggregate.RevenueSummary(nil),
			LastUpdated:    time.Now().UTC(),
		}
		if err := h.saveLedger(ctx, &led); err != nil {
			return nil, err
		}
		return &led, nil
	}
	if err != nil {
		return nil, err
	}
	_ = json.Unmarshal(products, &led.Products)
	_ = json.Unmarshal(affiliateLinks, &led.AffiliateLinks)
	_ = json.Unmarshal(sponsorships, &led.Sponsorships)
	_ = json.Unmarshal(transactions, &led.Transactions)
	_ = json.Unmarshal(revenueSummary, &led.RevenueSummary)
	return &led, nil
}

func (h *Handler) saveLedger(ctx context.Context, led *models.Ledger) error {
	led.LastUpdated = time.Now().UTC()
	query := `
		INSERT INTO public.monetization_ledgers (id, user_id, products, affiliate_links,
			sponsorships, transactions, revenue_summary, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			products = EXCLUDED.products,
			affiliate_links = EXCLUDED.affiliate_links,
			sponsorships = EXCLUDED.sponsorships,
			transactions = EXCLUDED.transactions,
			revenue_summary = EXCLUDED.revenue_summary,
			last_updated = EXCLUDED.last_updated
	`
	_, err := h.db.ExecContext(ctx, query,
		led.ID, led.UserID,
		jsonb(led.Products), jsonb(led.AffiliateLinks), jsonb(led.Sponsorships),
		jsonb(led.Transactions), jsonb(led.RevenueSummary), led.LastUpdated)
	return err
}

func (h *Handler) GetMonetizationOverview(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	// Recompute the summary on every read; the fold is idempotent.
	led.RevenueSummary = aggregate.RevenueSummary(led.Transactions)
	if err := h.saveLedger(r.Context(), led); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"revenueSummary": led.RevenueSummary,
			"lastUpdated":    led.LastUpdated,
		},
	})
}

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(led.Products),
		"data":    led.Products,
	})
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required"`
	ImageURL    *string `json:"imageUrl"`
	DownloadURL *string `json:"downloadUrl"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req createProductRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide name, description, price, and type")
		return
	}

	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	p := models.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Type:        req.Type,
		ImageURL:    req.ImageURL,
		DownloadURL: req.DownloadURL,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	led.Products = append(led.Products, p)

	if err := h.saveLedger(r.Context(), led); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    p,
	})
}

type updateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Type        string   `json:"type"`
	ImageURL    *string  `json:"imageUrl"`
	DownloadURL *string  `json:"downloadUrl"`
	IsActive    *bool    `json:"isActive"`
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	idx := -1
	for i := range led.Products {
		if led.Products[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	p := &led.Products[idx]
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Type != "" {
		p.Type = req.Type
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	if req.DownloadURL != nil {
		p.DownloadURL = req.DownloadURL
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.saveLedger(r.Context(), led); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    p,
	})
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	kept := led.Products[:0]
	found := false
	for _, p := range led.Products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	led.Products = kept

	if err := h.saveLedger(r.Context(), led); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product deleted successfully",
	})
}

func (h *Handler) GetAffiliateLinks(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(led.AffiliateLinks),
		"data":    led.AffiliateLinks,
	})
}

type createAffiliateLinkRequest struct {
	Name         string  `json:"name" validate:"required"`
	Platform     string  `json:"platform" validate:"required"`
	URL          string  `json:"url" validate:"required"`
	TrackingCode *string `json:"trackingCode"`
	Commission   float64 `json:"commission"`
}

func (h *Handler) CreateAffiliateLink(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req createAffiliateLinkRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide name, platform, and url")
		return
	}

	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	l := models.AffiliateLink{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Platform:     req.Platform,
		URL:          req.URL,
		TrackingCode: req.TrackingCode,
		Commission:   req.Commission,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	led.AffiliateLinks = append(led.AffiliateLinks, l)

	if err := h.saveLedger(r.Context(), led); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    l,
	})
}

type updateAffiliateLinkRequest struct {
	Name         string   `json:"name"`
	Platform     string   `json:"platform"`
	URL          string   `json:"url"`
	TrackingCode *string  `json:"trackingCode"`
	Commission   *float64 `json:"commission"`
	IsActive     *bool    `json:"isActive"`
}

func (h *Handler) UpdateAffiliateLink(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	var req updateAffiliateLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	idx := -1
	for i := range led.AffiliateLinks {
		if led.AffiliateLinks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		writeError(w, http.StatusNotFound, "Affiliate link not found")
		return
	}

	l := &led.AffiliateLinks[idx]
	if req.Name != "" {
		l.Name = req.Name
	}
	if req.Platform != "" {
		l.Platform = req.Platform
	}
	if req.URL != "" {
		l.URL = req.URL
	}
	if req.TrackingCode != nil {
		l.TrackingCode = req.TrackingCode
	}
	if req.Commission != nil {
		l.Commission = *req.Commission
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}

	if err := h.saveLedger(r.Context(), led); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    l,
	})
}

func (h *Handler) DeleteAffiliateLink(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	kept := led.AffiliateLinks[:0]
	found := false
	for _, l := range led.AffiliateLinks {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		writeError(w, http.StatusNotFound, "Affiliate link not found")
		return
	}
	led.AffiliateLinks = kept

	if err := h.saveLedger(r.Context(), led); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Affiliate link deleted successfully",
	})
}

func (h *Handler) GetSponsorships(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(led.Sponsorships),
		"data":    led.Sponsorships,
	})
}

type createSponsorshipRequest struct {
	Name         string     `json:"name" validate:"required"`
	Brand        string     `json:"brand" validate:"required"`
	Description  *string    `json:"description"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Value        float64    `json:"value" validate:"required,gt=0"`
	Status       string     `json:"status"`
	Deliverables []string   `json:"deliverables"`
	Notes        *string    `json:"notes"`
}

func (h *Handler) CreateSponsorship(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req createSponsorshipRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide name, brand, and value")
		return
	}
	if req.Status == "" {
		req.Status = "negotiating"
	}
	if req.Deliverables == nil {
		req.Deliverables = []string{}
	}

	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	s := models.Sponsorship{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Brand:        req.Brand,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Value:        req.Value,
		Status:       req.Status,
		Deliverables: req.Deliverables,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
	}
	led.Sponsorships = append(led.Sponsorships, s)

	if err := h.saveLedger(r.Context(), led); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    s,
	})
}

type updateSponsorshipRequest struct {
	Name         string     `json:"name"`
	Brand        string     `json:"brand"`
	Description  *string    `json:"description"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Value        *float64   `json:"value"`
	Status       string     `json:"status"`
	Deliverables []string   `json:"deliverables"`
	Notes        *string    `json:"notes"`
}

func (h *Handler) UpdateSponsorship(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	var req updateSponsorshipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	idx := -1
	for i := range led.Sponsorships {
		if led.Sponsorships[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		writeError(w, http.StatusNotFound, "Sponsorship not found")
		return
	}

	s := &led.Sponsorships[idx]
	if req.Name != "" {
		s.Name = req.Name
	}
	if req.Brand != "" {
		s.Brand = req.Brand
	}
	if req.Description != nil {
		s.Description = req.Description
	}
	if req.StartDate != nil {
		s.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		s.EndDate = req.EndDate
	}
	if req.Value != nil {
		s.Value = *req.Value
	}
	if req.Status != "" {
		s.Status = req.Status
	}
	if req.Deliverables != nil {
		s.Deliverables = req.Deliverables
	}
	if req.Notes != nil {
		s.Notes = req.Notes
	}

	if err := h.saveLedger(r.Context(), led); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    s,
	})
}

func (h *Handler) DeleteSponsorship(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id := pathVar(r, "id")

	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	kept := led.Sponsorships[:0]
	found := false
	for _, s := range led.Sponsorships {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		writeError(w, http.StatusNotFound, "Sponsorship not found")
		return
	}
	led.Sponsorships = kept

	if err := h.saveLedger(r.Context(), led); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Sponsorship deleted successfully",
	})
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(led.Transactions),
		"data":    led.Transactions,
	})
}

type addTransactionRequest struct {
	Source        string  `json:"source" validate:"required,oneof=product affiliate sponsorship tip other"`
	SourceID      *string `json:"sourceId"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Platform      *string `json:"platform"`
	Status        string  `json:"status" validate:"omitempty,oneof=pending completed failed refunded"`
	PaymentMethod *string `json:"paymentMethod"`
	CustomerEmail *string `json:"customerEmail" validate:"omitempty,email"`
	Notes         *string `json:"notes"`
}

func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req addTransactionRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide source and amount")
		return
	}
	if req.Status == "" {
		req.Status = models.TxCompleted
	}

	led, err := h.loadLedger(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	tx := models.Transaction{
		ID:            uuid.NewString(),
		Source:        req.Source,
		SourceID:      req.SourceID,
		Amount:        req.Amount,
		Platform:      req.Platform,
		Date:          time.Now().UTC(),
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	}
	led.Transactions = append(led.Transactions, tx)
	led.RevenueSummary = aggregate.RevenueSummary(led.Transactions)

	if err := h.saveLedger(r.Context(), led); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    tx,
	})
}
