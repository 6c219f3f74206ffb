// Package ratelimiter limits request rates with a token bucket.
//
// A Bucket draws tokens from a Store: MemoryStore for a single process or
// RedisStore when limits must hold across instances. Middleware keys each
// request (by client IP by default), sets the X-RateLimit-* headers, and
// answers 429 with Retry-After once the bucket is empty.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     10,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//	r.Use(ratelimiter.Middleware(limiter, ratelimiter.KeyByIP))
//
// Store failures do not block traffic: the request is let through and the
// error is logged.
package ratelimiter
