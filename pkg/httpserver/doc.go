// Package httpserver runs an http.Handler with configured timeouts and a
// graceful shutdown when the run context is cancelled.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness (no probes) and readiness (with probes)
// endpoints in the JSON envelope used by the rest of the API.
package httpserver
