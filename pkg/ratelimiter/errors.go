package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("ratelimiter: invalid configuration")
	ErrInvalidTokenCount = errors.New("ratelimiter: invalid token count")
	ErrStoreUnavailable  = errors.New("ratelimiter: store unavailable")

	// ErrTooManyRequests is the message of the 429 envelope.
	ErrTooManyRequests = errors.New("Too many requests. Please try again later.")
)
