package common

import "errors"

var (
	ErrorNotFound     = errors.New("not found")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorUnavailable  = errors.New("server unavailable")

	// ErrInvalidToken is returned when an access credential cannot be decoded.
	ErrInvalidToken = errors.New("invalid token")
)
