package sessions

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidStorefront = errors.New("invalid storefront")
	ErrRateLimited       = errors.New("too many sessions, slow down")
)
