package content

import "errors"

var (
	ErrNotFound        = errors.New("content not found")
	ErrInvalidInput    = errors.New("invalid content")
	ErrPremiumRequired = errors.New("an active premium subscription is required")
	ErrNotAPrayer      = errors.New("content is not a prayer")
	ErrSlugTaken       = errors.New("slug already in use")
)
