package handlers

import (
	"io"
	"net/http"

	"sacredgreeks/models"
	"sacredgreeks/services/subscription"
	"sacredgreeks/services/user"
	"sacredgreeks/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxWebhookBytes matches the provider's documented payload ceiling.
const maxWebhookBytes = 65536

type BillingHandler struct {
	Subscriptions subscription.SubscriptionService
	Users         user.UserService
}

func NewBillingHandler(subs subscription.SubscriptionService, users user.UserService) *BillingHandler {
	return &BillingHandler{Subscriptions: subs, Users: users}
}

func (h *BillingHandler) StatusHandler(c *gin.Context) {
	sub, err := h.Subscriptions.Status(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err, "Failed to load subscription")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub, "premium": sub.Active()})
}

func (h *BillingHandler) CheckoutHandler(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	userID := currentUserID(c)

	usr, err := h.Users.GetProfile(ctx, userID)
	if err != nil {
		respondError(c, err, "Failed to start checkout")
		return
	}
	url, err := h.Subscriptions.CreateCheckout(ctx, userID, usr.Email, req.Plan)
	if err != nil {
		respondError(c, err, "Failed to start checkout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *BillingHandler) PortalHandler(c *gin.Context) {
	url, err := h.Subscriptions.CreatePortal(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err, "Failed to open billing portal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// WebhookHandler verifies and applies a provider event. The raw body is required for the signature check.
func (h *BillingHandler) WebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		utils.GetLogger().Warn("Failed to read webhook body", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Could not read request body", "")
		return
	}
	if err := h.Subscriptions.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		respondError(c, err, "Failed to process webhook")
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
