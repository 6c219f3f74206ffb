package ratelimiter

import "time"

// Result is the outcome of one rate limit check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // negative when the request was denied
	ResetAt   time.Time // next refill
}

func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long a denied caller should wait, or 0.
func (r *Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, r.ResetAt.Sub(now))
}

// Config defines the token bucket.
type Config struct {
	Capacity       int           `env:"CAPACITY" envDefault:"10"`    // burst size
	RefillRate     int           `env:"REFILL_RATE" envDefault:"10"` // tokens per interval
	RefillInterval time.Duration `env:"REFILL_INTERVAL" envDefault:"1m"`
}

// stateTTL is how long an idle bucket must be kept before it would be full
// again anyway.
func (c Config) stateTTL() time.Duration {
	intervals := (c.Capacity + c.RefillRate - 1) / c.RefillRate
	return time.Duration(intervals+1) * c.RefillInterval
}
