// Package logger builds *slog.Logger values with functional options and
// injects request-scoped attributes (request id, environment) from the
// context at log time.
//
//	log := logger.New(
//		logger.WithEnvironment("production", "userkit"),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "signed in", logger.UserID(sub), logger.Handler("sign_in"))
//
// Attribute helpers keep key names consistent across packages.
package logger
