package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/userkit/handler"
	"github.com/dmitrymomot/userkit/pkg/logger"
)

// HealthCheckHandler answers {"msg":"alive"} when no probes are given. With
// probes it answers {"msg":"ready"} if all pass and 503 otherwise.
func HealthCheckHandler(log *slog.Logger, probes ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(probes) == 0 {
			_ = handler.JSON("alive").Render(w, r)
			return
		}

		for _, probe := range probes {
			if err := probe(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					logger.Component("httpserver"),
					logger.Error(err),
				)
				_ = handler.JSON("not ready",
					handler.WithJSONStatus(http.StatusServiceUnavailable),
					handler.WithErrorDetail(err.Error()),
				).Render(w, r)
				return
			}
		}

		_ = handler.JSON("ready").Render(w, r)
	}
}
