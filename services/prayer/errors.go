package prayer

import "errors"

var (
	ErrNotFound     = errors.New("prayer request not found")
	ErrForbidden    = errors.New("not allowed to modify this prayer request")
	ErrInvalidInput = errors.New("invalid prayer request")
	ErrStreamClosed = errors.New("prayer wall stream unavailable")
)
