// Package logger builds *slog.Logger instances for the service and keeps
// attribute naming consistent across packages.
//
// New applies functional options (format, level, output, static attributes,
// context extractors) and wraps the resulting slog.Handler with
// LogHandlerDecorator, which pulls request-scoped values such as the request
// id out of the context on every Handle call.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "ipinfo"),
//		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "lookup completed", logger.IP("8.8.8.8"), logger.Duration(d))
//
// Middleware logs one record per HTTP request with method, path, status,
// duration and caller address.
package logger
