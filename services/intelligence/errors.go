package intelligence

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid prayer intention")
	ErrUnavailable   = errors.New("guided prayer is unavailable")
	ErrEmptyResponse = errors.New("model returned no prayer")
)
