package forum

import "errors"

var (
	ErrNotFound        = errors.New("forum entry not found")
	ErrUnknownCategory = errors.New("unknown forum category")
	ErrInvalidInput    = errors.New("invalid forum post")
	ErrTopicLocked     = errors.New("topic is locked")
	ErrForbidden       = errors.New("not allowed to modify this post")
)
