// Package httpserver runs an http.Server with graceful shutdown.
//
// Run blocks until the context is cancelled, SIGINT/SIGTERM is received or the
// listener fails, then drains in-flight requests within the configured
// shutdown timeout. Timeouts and the listen address are set through Option
// values or from a Config loaded by the config package.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Listen failures are wrapped with ErrStart and shutdown failures with
// ErrShutdown.
package httpserver
