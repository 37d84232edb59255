package handlers

import (
	"github.com/gorilla/mux"
	"github.com/unisphere-app/backend/internal/middleware"
)

// Register mounts the full API surface on r. The websocket endpoint and the
// public auth routes sit outside the auth gate; everything else requires a
// bearer token.
func Register(h *Handler, r *mux.Router, gate *middleware.AuthGate, plans *middleware.PlanEnforcer) {
	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", h.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.Login).Methods("POST")

	// WS upgrade carries the token as a query parameter, not a header.
	api.HandleFunc("/events", h.EventsWebSocket).Methods("GET")

	authed := api.NewRoute().Subrouter()
	authed.Use(gate.Middleware, plans.Middleware)

	authed.HandleFunc("/auth/me", h.GetCurrentUser).Methods("GET")
	authed.HandleFunc("/auth/me", h.UpdateProfile).Methods("PUT")
	authed.HandleFunc("/auth/password", h.ChangePassword).Methods("PUT")
	authed.HandleFunc("/auth/connect", h.GetConnectedAccounts).Methods("GET")
	authed.HandleFunc("/auth/connect/{platform}", h.ConnectAccount).Methods("POST")
	authed.HandleFunc("/auth/connect/{platform}", h.DisconnectAccount).Methods("DELETE")

	authed.HandleFunc("/content", h.ListContent).Methods("GET")
	authed.HandleFunc("/content", h.CreateContent).Methods("POST")
	authed.HandleFunc("/content/generate", h.GenerateContent).Methods("POST")
	authed.HandleFunc("/content/{id}", h.GetContent).Methods("GET")
	authed.HandleFunc("/content/{id}", h.UpdateContent).Methods("PUT")
	authed.HandleFunc("/content/{id}", h.DeleteContent).Methods("DELETE")
	authed.HandleFunc("/content/{id}/publish", h.PublishContent).Methods("POST")

	authed.HandleFunc("/analytics/overview", h.GetAnalyticsOverview).Methods("GET")
	authed.HandleFunc("/analytics/audience", h.GetAudienceDemographics).Methods("GET")
	authed.HandleFunc("/analytics/content", h.GetContentPerformance).Methods("GET")
	authed.HandleFunc("/analytics/insights", h.GetGrowthInsights).Methods("GET")
	authed.HandleFunc("/analytics/sync", h.SyncAnalytics).Methods("POST")

	authed.HandleFunc("/growth/overview", h.GetGrowthOverview).Methods("GET")
	authed.HandleFunc("/growth/strategies", h.GetStrategies).Methods("GET")
	authed.HandleFunc("/growth/strategies", h.CreateStrategy).Methods("POST")
	authed.HandleFunc("/growth/strategies/{id}", h.UpdateStrategy).Methods("PUT")
	authed.HandleFunc("/growth/strategies/{id}", h.DeleteStrategy).Methods("DELETE")
	authed.HandleFunc("/growth/collaborations", h.GetCollaborations).Methods("GET")
	authed.HandleFunc("/growth/collaborations", h.CreateCollaboration).Methods("POST")
	authed.HandleFunc("/growth/collaborations/{id}", h.UpdateCollaboration).Methods("PUT")
	authed.HandleFunc("/growth/collaborations/{id}", h.DeleteCollaboration).Methods("DELETE")
	authed.HandleFunc("/growth/trends", h.GetTrendingTopics).Methods("GET")
	authed.HandleFunc("/growth/trends", h.CreateTrendingTopic).Methods("POST")
	authed.HandleFunc("/growth/trends/{id}", h.UpdateTrendingTopic).Methods("PUT")
	authed.HandleFunc("/growth/trends/{id}", h.DeleteTrendingTopic).Methods("DELETE")
	authed.HandleFunc("/growth/hashtags", h.GetHashtagCollections).Methods("GET")
	authed.HandleFunc("/growth/hashtags", h.CreateHashtagCollection).Methods("POST")
	authed.HandleFunc("/growth/hashtags/{id}", h.UpdateHashtagCollection).Methods("PUT")
	authed.HandleFunc("/growth/hashtags/{id}", h.DeleteHashtagCollection).Methods("DELETE")
	authed.HandleFunc("/growth/generate-recommendations", h.GenerateRecommendations).Methods("POST")

	authed.HandleFunc("/monetization/overview", h.GetMonetizationOverview).Methods("GET")
	authed.HandleFunc("/monetization/products", h.GetProducts).Methods("GET")
	authed.HandleFunc("/monetization/products", h.CreateProduct).Methods("POST")
	authed.HandleFunc("/monetization/products/{id}", h.UpdateProduct).Methods("PUT")
	authed.HandleFunc("/monetization/products/{id}", h.DeleteProduct).Methods("DELETE")
	authed.HandleFunc("/monetization/affiliate", h.GetAffiliateLinks).Methods("GET")
	authed.HandleFunc("/monetization/affiliate", h.CreateAffiliateLink).Methods("POST")
	authed.HandleFunc("/monetization/affiliate/{id}", h.UpdateAffiliateLink).Methods("PUT")
	authed.HandleFunc("/monetization/affiliate/{id}", h.DeleteAffiliateLink).Methods("DELETE")
	authed.HandleFunc("/monetization/sponsorships", h.GetSponsorships).Methods("GET")
	authed.HandleFunc("/monetization/sponsorships", h.CreateSponsorship).Methods("POST")
	authed.HandleFunc("/monetization/sponsorships/{id}", h.UpdateSponsorship).Methods("PUT")
	authed.HandleFunc("/monetization/sponsorships/{id}", h.DeleteSponsorship).Methods("DELETE")
	authed.HandleFunc("/monetization/transactions", h.GetTransactions).Methods("GET")
	authed.HandleFunc("/monetization/transactions", h.AddTransaction).Methods("POST")
}
