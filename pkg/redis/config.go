package redis

import "time"

// Config describes the Redis connection. An empty ConnectionURL means Redis
// is not used and callers fall back to in-memory stores.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"` // redis://:password@localhost:6379/0
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
