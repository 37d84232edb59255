package middleware

import (
	"net/http"
	"strings"
)

// PlanLimits defines the limits for each plan
type PlanLimits struct {
	SocialAccounts int    `json:"social_accounts"` // -1 = unlimited
	PostsPerMonth  int    `json:"posts_per_month"` // -1 = unlimited
	Analytics      string `json:"analytics"`       // "basic", "advanced", "enterprise"
}

// PlanEnforcer gates account-connection requests on the caller's plan.
type PlanEnforcer struct {
	Limits map[string]PlanLimits
}

func NewPlanEnforcer() *PlanEnforcer {
	limits := map[string]PlanLimits{
		"free": {
			SocialAccounts: 5,
			PostsPerMonth:  100,
			Analytics:      "basic",
		},
		"pro": {
			SocialAccounts: 25,
			PostsPerMonth:  -1,
			Analytics:      "advanced",
		},
		"business": {
			SocialAccounts: -1,
			PostsPerMonth:  -1,
			Analytics:      "enterprise",
		},
	}
	return &PlanEnforcer{Limits: limits}
}

// Middleware enforces the connected-account ceiling on connect requests.
// It runs after the auth gate, so the user record is already in context.
func (pe *PlanEnforcer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.Contains(r.URL.Path, "/auth/connect/") {
			next.ServeHTTP(w, r)
			return
		}
		user := UserFrom(r.Context())
		if user == nil {
			respondError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		plan := user.Subscription.Plan
		limits, ok := pe.Limits[plan]
		if !ok {
			limits = pe.Limits["free"]
		}
		if limits.SocialAccounts < 0 {
			next.ServeHTTP(w, r)
			return
		}

		connected := 0
		for _, acct := range user.SocialAccounts {
			if acct.IsConnected {
				connected++
			}
		}
		if connected >= limits.SocialAccounts {
			respondError(w, http.StatusPaymentRequired, "Social account limit reached for your plan, please upgrade")
			return
		}

		next.ServeHTTP(w, r)
	})
}
