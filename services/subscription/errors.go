package subscription

import "errors"

var (
	ErrUnknownPlan      = errors.New("unknown plan")
	ErrNoCustomer       = errors.New("no billing account for this user")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrNotConfigured    = errors.New("billing is not configured")
)
