package app

import (
	"github.com/dmitrymomot/userkit/pkg/clientip"
	"github.com/dmitrymomot/userkit/pkg/ratelimiter"
)

// Config holds process-level settings. Collaborator configs are loaded by
// their own packages.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"userkit"`
	LogLevel    string `env:"LOG_LEVEL"`

	// RateLimit guards the public credential endpoints per client IP.
	RateLimit        ratelimiter.Config `envPrefix:"RATE_LIMIT_"`
	RateLimitEnabled bool               `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// ClientIP names the proxies allowed to report the client address.
	ClientIP clientip.Config
}
