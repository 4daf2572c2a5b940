package models

import "time"

const (
	PlanFree           = "free"
	PlanPremiumMonthly = "premium_monthly"
	PlanPremiumAnnual  = "premium_annual"
)

type Subscription struct {
	UserID               string     `bson:"userId" json:"userId"`
	StripeCustomerID     string     `bson:"stripeCustomerId,omitempty" json:"-"`
	StripeSubscriptionID string     `bson:"stripeSubscriptionId,omitempty" json:"-"`
	Plan                 string     `bson:"plan" json:"plan"`
	Status               string     `bson:"status" json:"status"`
	CurrentPeriodEnd     *time.Time `bson:"currentPeriodEnd,omitempty" json:"currentPeriodEnd,omitempty"`
	CancelAtPeriodEnd    bool       `bson:"cancelAtPeriodEnd" json:"cancelAtPeriodEnd"`
	UpdatedAt            time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Active reports whether the subscription currently grants premium access.
func (s *Subscription) Active() bool {
	if s == nil {
		return false
	}
	return s.Status == "active" || s.Status == "trialing"
}

type CheckoutRequest struct {
	Plan string `json:"plan" binding:"required"`
}
