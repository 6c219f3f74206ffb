// Package app wires configuration, logging and collaborators into the HTTP
// handler served by both entrypoints.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/userkit/pkg/clientip"
	"github.com/dmitrymomot/userkit/pkg/config"
	"github.com/dmitrymomot/userkit/pkg/environment"
	"github.com/dmitrymomot/userkit/pkg/logger"
	"github.com/dmitrymomot/userkit/pkg/requestid"
)

type App struct {
	Config  Config
	Log     *slog.Logger
	Handler http.Handler

	closers []func() error
}

// New loads configuration from the environment (and .env, if present),
// connects collaborators and builds the router.
func New(ctx context.Context) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	log := NewLogger(cfg)

	resolver, err := clientip.NewResolverFromConfig(cfg.ClientIP)
	if err != nil {
		return nil, err
	}

	in, err := setupInfra(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Log:    log,
		Handler: NewRouter(Deps{
			Env:      environment.Parse(cfg.Env),
			Log:      log,
			Identity: in.idp,
			Storage:  in.storage,
			Codes:    in.codes,
			Mailer:   in.mailer,
			Limiter:  in.limiter,
			Probes:   in.probes,
			ClientIP: resolver,
		}),
		closers: in.closers,
	}, nil
}

// NewLogger builds the process logger and makes it the slog default.
func NewLogger(cfg Config) *slog.Logger {
	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)
	return log
}

// Close releases connections in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
