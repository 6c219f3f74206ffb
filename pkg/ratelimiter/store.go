package ratelimiter

import (
	"context"
	"time"
)

// Store holds bucket state.
type Store interface {
	// ConsumeTokens refills the bucket for the elapsed time, then takes
	// tokens from it. A negative remaining count means the request is denied.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	Reset(ctx context.Context, key string) error
}

// refill applies the token bucket arithmetic shared by the stores.
func refill(tokens int, lastRefill, now time.Time, config Config) (int, time.Time) {
	elapsed := now.Sub(lastRefill)
	// Capped so a long idle period cannot overflow.
	maxIntervals := int64(config.Capacity/config.RefillRate + 1)
	intervals := int(min(int64(elapsed/config.RefillInterval), maxIntervals))

	if intervals > 0 {
		tokens = min(tokens+intervals*config.RefillRate, config.Capacity)
		lastRefill = now
	}
	return tokens, lastRefill
}
