// Package redis connects to Redis for the stores that need shared state
// across instances (rate limit buckets, one-time codes).
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		...
//	}
package redis
