package notification

import "errors"

var (
	ErrInvalidInput = errors.New("invalid push subscription")
	ErrNotFound     = errors.New("push subscription not found")
)
