package subscription

import (
	"context"
	"time"

	subscriptionRepo "sacredgreeks/database/repository/subscription"
	"sacredgreeks/models"
)

type SubscriptionService interface {
	Status(ctx context.Context, userID string) (*models.Subscription, error)
	IsPremium(ctx context.Context, userID string) (bool, error)
	CreateCheckout(ctx context.Context, userID, email, plan string) (string, error)
	CreatePortal(ctx context.Context, userID string) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// CheckoutParams describes a hosted subscription checkout.
type CheckoutParams struct {
	UserID     string
	Email      string
	CustomerID string
	PriceID    string
	Plan       string
	SuccessURL string
	CancelURL  string
}

// Event types the service reacts to.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// WebhookEvent is a verified provider event reduced to the fields billing needs.
type WebhookEvent struct {
	ID                string
	Type              string
	UserID            string
	Plan              string
	CustomerID        string
	SubscriptionID    string
	Status            string
	PriceID           string
	CurrentPeriodEnd  *time.Time
	CancelAtPeriodEnd bool
}

// BillingGateway talks to the payment provider's hosted flows.
type BillingGateway interface {
	CheckoutURL(ctx context.Context, p CheckoutParams) (string, error)
	PortalURL(ctx context.Context, customerID, returnURL string) (string, error)
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

type DefaultSubscriptionService struct {
	Repo    subscriptionRepo.SubscriptionRepository
	Gateway BillingGateway
	// Prices maps plan keys to provider price IDs.
	Prices map[string]string
	AppURL string
}
