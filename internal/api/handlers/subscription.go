package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/soundloop/soundloop-api/internal/api/middleware"
	"github.com/soundloop/soundloop-api/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) Status(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.subscriptionService.Status(user))
}

// MockUpgrade flips the caller to premium. Test scaffolding carried from the
// mobile client's development flow; gated by auth only. A real deployment
// replaces these two endpoints with billing provider webhooks.
func (h *SubscriptionHandler) MockUpgrade(w http.ResponseWriter, r *http.Request) {
	h.setPremium(w, r, true, "Upgraded to premium")
}

// MockDowngrade flips the caller back to the free tier. See MockUpgrade.
func (h *SubscriptionHandler) MockDowngrade(w http.ResponseWriter, r *http.Request) {
	h.setPremium(w, r, false, "Downgraded to free")
}

func (h *SubscriptionHandler) setPremium(w http.ResponseWriter, r *http.Request, premium bool, message string) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.subscriptionService.SetPremium(r.Context(), user.UserID, premium); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    message,
		"is_premium": premium,
	})
}
