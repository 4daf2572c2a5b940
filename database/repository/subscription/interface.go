package subscriptionRepo

import (
	"context"

	"sacredgreeks/models"
)

type SubscriptionRepository interface {
	// GetByUserID returns nil, nil when the user never started a checkout.
	GetByUserID(ctx context.Context, userID string) (*models.Subscription, error)
	GetByCustomerID(ctx context.Context, customerID string) (*models.Subscription, error)
	// Upsert writes the record keyed by user ID.
	Upsert(ctx context.Context, sub *models.Subscription) error
}
