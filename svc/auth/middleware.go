package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/userkit/handler"
	"github.com/dmitrymomot/userkit/pkg/identity"
	"github.com/dmitrymomot/userkit/pkg/logger"
	"github.com/dmitrymomot/userkit/pkg/requestid"
)

const bearerPrefix = "Bearer "

// Resolver turns an access token into a user.
// identity.Provider satisfies it.
type Resolver interface {
	GetUser(ctx context.Context, accessToken string) (*identity.User, error)
}

// TokenExtractorFunc extracts an access token from a request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// Option configures Middleware.
type Option func(*middlewareConfig)

type middlewareConfig struct {
	extractor TokenExtractorFunc
	log       *slog.Logger
}

// WithExtractor replaces BearerTokenExtractor.
func WithExtractor(fn TokenExtractorFunc) Option {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.extractor = fn
		}
	}
}

// WithLogger logs rejected requests at warn level.
func WithLogger(log *slog.Logger) Option {
	return func(c *middlewareConfig) {
		c.log = log
	}
}

// Middleware rejects requests without a valid access token and injects the
// resolved user and token into the context of those it lets through.
func Middleware(resolver Resolver, opts ...Option) func(next http.Handler) http.Handler {
	cfg := &middlewareConfig{extractor: BearerTokenExtractor}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := cfg.extractor(r)
			if err != nil {
				cfg.reject(w, r, err, handler.JSON(ErrMissingToken.Error(),
					handler.WithJSONStatus(http.StatusUnauthorized)))
				return
			}

			user, err := resolver.GetUser(r.Context(), token)
			if err != nil {
				cfg.reject(w, r, err, handler.JSON(err.Error(),
					handler.WithJSONStatus(http.StatusUnauthorized),
					handler.WithErrorDetail(diagnostic(err))))
				return
			}

			ctx := SetTokenToContext(r.Context(), token)
			ctx = SetUserToContext(ctx, user)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (c *middlewareConfig) reject(w http.ResponseWriter, r *http.Request, err error, resp handler.Response) {
	if c.log != nil {
		c.log.LogAttrs(r.Context(), slog.LevelWarn, "unauthorized request",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.String("path", r.URL.Path),
			logger.Component("auth_middleware"),
		)
	}
	_ = resp.Render(w, r)
}

func diagnostic(err error) string {
	var idErr *identity.Error
	if errors.As(err, &idErr) && idErr.Code != "" {
		return idErr.Code
	}
	return err.Error()
}

// BearerTokenExtractor reads "Authorization: Bearer <token>". The scheme is
// case-sensitive and the token ends at the next space.
func BearerTokenExtractor(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	rest, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", ErrMissingToken
	}

	token, _, _ := strings.Cut(rest, " ")
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
