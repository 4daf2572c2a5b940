package email

import "errors"

var (
	ErrNoRecipients  = errors.New("email has no recipients")
	ErrEmptyMessage  = errors.New("email subject and body are required")
	ErrNotConfigured = errors.New("email provider is not configured")
)
