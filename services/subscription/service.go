package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sacredgreeks/models"
	"sacredgreeks/utils"

	"go.uber.org/zap"
)

func (s *DefaultSubscriptionService) Status(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("billing: status lookup failed", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load subscription")
	}
	if sub == nil {
		return &models.Subscription{UserID: userID, Plan: models.PlanFree, Status: "none"}, nil
	}
	return sub, nil
}

func (s *DefaultSubscriptionService) IsPremium(ctx context.Context, userID string) (bool, error) {
	sub, err := s.Status(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub.Active(), nil
}

func (s *DefaultSubscriptionService) appURL(path string) string {
	return strings.TrimRight(s.AppURL, "/") + path
}

func (s *DefaultSubscriptionService) planForPrice(priceID string) string {
	for plan, id := range s.Prices {
		if id != "" && id == priceID {
			return plan
		}
	}
	return ""
}

func (s *DefaultSubscriptionService) CreateCheckout(ctx context.Context, userID, email, plan string) (string, error) {
	priceID, ok := s.Prices[plan]
	if !ok || priceID == "" || plan == models.PlanFree {
		return "", ErrUnknownPlan
	}
	if s.Gateway == nil {
		return "", ErrNotConfigured
	}

	existing, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("billing: lookup failed", zap.String("userID", userID), zap.Error(err))
		return "", fmt.Errorf("failed to start checkout")
	}
	customerID := ""
	if existing != nil {
		customerID = existing.StripeCustomerID
	}

	url, err := s.Gateway.CheckoutURL(ctx, CheckoutParams{
		UserID:     userID,
		Email:      email,
		CustomerID: customerID,
		PriceID:    priceID,
		Plan:       plan,
		SuccessURL: s.appURL("/subscription?status=success"),
		CancelURL:  s.appURL("/subscription?status=cancelled"),
	})
	if err != nil {
		utils.GetLogger().Error("billing: checkout failed", zap.String("userID", userID), zap.Error(err))
		return "", fmt.Errorf("failed to start checkout")
	}
	return url, nil
}

func (s *DefaultSubscriptionService) CreatePortal(ctx context.Context, userID string) (string, error) {
	if s.Gateway == nil {
		return "", ErrNotConfigured
	}
	sub, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("billing: lookup failed", zap.String("userID", userID), zap.Error(err))
		return "", fmt.Errorf("failed to open billing portal")
	}
	if sub == nil || sub.StripeCustomerID == "" {
		return "", ErrNoCustomer
	}
	url, err := s.Gateway.PortalURL(ctx, sub.StripeCustomerID, s.appURL("/subscription"))
	if err != nil {
		utils.GetLogger().Error("billing: portal failed", zap.String("userID", userID), zap.Error(err))
		return "", fmt.Errorf("failed to open billing portal")
	}
	return url, nil
}

// HandleWebhook verifies and applies a provider event. Unknown event types are ignored.
func (s *DefaultSubscriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.Gateway == nil {
		return ErrNotConfigured
	}
	ev, err := s.Gateway.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}

	switch ev.Type {
	case EventCheckoutCompleted:
		return s.linkCheckout(ctx, ev)
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted:
		return s.syncSubscription(ctx, ev)
	default:
		utils.GetLogger().Debug("billing: ignoring event", zap.String("type", ev.Type))
		return nil
	}
}

func (s *DefaultSubscriptionService) linkCheckout(ctx context.Context, ev *WebhookEvent) error {
	if ev.UserID == "" {
		utils.GetLogger().Warn("billing: checkout without client reference", zap.String("event", ev.ID))
		return nil
	}
	sub, err := s.Repo.GetByUserID(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("load subscription: %w", err)
	}
	if sub == nil {
		sub = &models.Subscription{UserID: ev.UserID, Plan: models.PlanFree}
	}
	sub.StripeCustomerID = ev.CustomerID
	sub.StripeSubscriptionID = ev.SubscriptionID
	if ev.Plan != "" {
		sub.Plan = ev.Plan
	}
	// The subscription events carry the authoritative status; until then a paid checkout is active.
	if sub.Status == "" || sub.Status == "none" {
		sub.Status = "active"
	}
	return s.Repo.Upsert(ctx, sub)
}

func (s *DefaultSubscriptionService) syncSubscription(ctx context.Context, ev *WebhookEvent) error {
	logger := utils.GetLogger()

	var sub *models.Subscription
	var err error
	if ev.CustomerID != "" {
		sub, err = s.Repo.GetByCustomerID(ctx, ev.CustomerID)
		if err != nil {
			return fmt.Errorf("load subscription: %w", err)
		}
	}
	if sub == nil && ev.UserID != "" {
		sub, err = s.Repo.GetByUserID(ctx, ev.UserID)
		if err != nil {
			return fmt.Errorf("load subscription: %w", err)
		}
		if sub == nil {
			sub = &models.Subscription{UserID: ev.UserID}
		}
	}
	if sub == nil {
		logger.Warn("billing: subscription event for unknown customer", zap.String("customer", ev.CustomerID))
		return nil
	}

	sub.StripeCustomerID = ev.CustomerID
	sub.StripeSubscriptionID = ev.SubscriptionID
	sub.Status = ev.Status
	sub.CancelAtPeriodEnd = ev.CancelAtPeriodEnd
	sub.CurrentPeriodEnd = ev.CurrentPeriodEnd

	plan := s.planForPrice(ev.PriceID)
	if plan == "" {
		plan = ev.Plan
	}
	if ev.Type == EventSubscriptionDeleted {
		plan = models.PlanFree
		if sub.Status == "" {
			sub.Status = "canceled"
		}
	}
	if plan != "" {
		sub.Plan = plan
	}
	sub.UpdatedAt = time.Now()
	if err := s.Repo.Upsert(ctx, sub); err != nil {
		logger.Error("billing: upsert failed", zap.String("userID", sub.UserID), zap.Error(err))
		return err
	}
	return nil
}
