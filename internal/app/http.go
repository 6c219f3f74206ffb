package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/userkit/handler"
	"github.com/dmitrymomot/userkit/modules/account"
	"github.com/dmitrymomot/userkit/pkg/clientip"
	"github.com/dmitrymomot/userkit/pkg/email"
	"github.com/dmitrymomot/userkit/pkg/environment"
	"github.com/dmitrymomot/userkit/pkg/httpserver"
	"github.com/dmitrymomot/userkit/pkg/identity"
	"github.com/dmitrymomot/userkit/pkg/ratelimiter"
	"github.com/dmitrymomot/userkit/pkg/requestid"
	"github.com/dmitrymomot/userkit/pkg/storage"
)

// Deps are the collaborators the router is built from. Mailer and Codes are
// optional; without both the one-time-code reset routes are not mounted.
// Limiter is optional. A nil ClientIP trusts no forwarding headers.
type Deps struct {
	Env      environment.Environment
	Log      *slog.Logger
	Identity identity.Provider
	Storage  storage.Storage
	Codes    account.CodeIssuer
	Mailer   email.EmailSender
	Limiter  ratelimiter.RateLimiter
	Probes   []func(context.Context) error
	ClientIP *clientip.Resolver
}

// NewRouter assembles the HTTP surface:
//
//	/health/live, /health/ready
//	/auth/*, /password/*, /profile/*
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	resolver := d.ClientIP
	if resolver == nil {
		resolver = clientip.NewResolver()
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware(),
		resolver.Middleware,
		environment.Middleware(d.Env),
	)

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, d.Probes...))

	opts := []account.Option{account.WithLogger(log)}
	if d.Limiter != nil {
		opts = append(opts, account.WithRateLimit(
			ratelimiter.Middleware(d.Limiter, ratelimiter.KeyByIP, ratelimiter.WithLogger(log)),
		))
	}

	var codes account.CodeIssuer
	if d.Codes != nil && d.Mailer != nil {
		codes = d.Codes
	}

	r.Mount("/", account.Router(account.RouterOptions{
		Auth:     account.NewAuthService(d.Identity, opts...),
		Password: account.NewPasswordService(d.Identity, codes, d.Mailer, opts...),
		Profile:  account.NewProfileService(d.Identity, d.Storage, opts...),
	}))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		_ = handler.JSON("Not found", handler.WithJSONStatus(http.StatusNotFound)).Render(w, req)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		_ = handler.JSON("Method not allowed", handler.WithJSONStatus(http.StatusMethodNotAllowed)).Render(w, req)
	})

	return r
}
