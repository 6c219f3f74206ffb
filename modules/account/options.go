package account

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/userkit/handler"
	"github.com/dmitrymomot/userkit/pkg/binder"
)

// Option configures a service.
type Option func(*options)

type options struct {
	log          *slog.Logger
	errorHandler handler.ErrorHandler
	now          func() time.Time
	rateLimit    func(http.Handler) http.Handler
}

func newOptions(opts []Option) *options {
	o := &options{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.errorHandler == nil {
		o.errorHandler = handler.NewErrorHandler(o.log)
	}
	return o
}

// WithLogger sets the logger used for events and, unless WithErrorHandler is
// given, for request errors.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(o *options) {
		o.errorHandler = h
	}
}

// WithClock fixes the time used for validation, attribute timestamps and
// object keys.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithRateLimit guards the unauthenticated credential endpoints.
func WithRateLimit(mw func(http.Handler) http.Handler) Option {
	return func(o *options) {
		o.rateLimit = mw
	}
}

// jsonRoute binds the JSON body into R before calling h.
func jsonRoute[R any](o *options, h handler.HandlerFunc[R]) http.HandlerFunc {
	return handler.Wrap(h, handler.Route{
		Binders:      []handler.Bind{binder.JSON()},
		ErrorHandler: o.errorHandler,
	})
}

// route serves a handler without a request body.
func route(o *options, h handler.HandlerFunc[struct{}]) http.HandlerFunc {
	return handler.Wrap(h, handler.Route{ErrorHandler: o.errorHandler})
}

// public applies the rate limiter, if any, to a group of routes.
func (o *options) public(r chi.Router) {
	if o.rateLimit != nil {
		r.Use(o.rateLimit)
	}
}
