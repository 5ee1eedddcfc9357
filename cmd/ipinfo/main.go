// Command ipinfo serves the IP information API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dreamteam/ipinfo/internal/api"
	"github.com/dreamteam/ipinfo/internal/history"
	"github.com/dreamteam/ipinfo/internal/metrics"
	"github.com/dreamteam/ipinfo/internal/upstream"
	"github.com/dreamteam/ipinfo/pkg/config"
	"github.com/dreamteam/ipinfo/pkg/httpserver"
	"github.com/dreamteam/ipinfo/pkg/logger"
	"github.com/dreamteam/ipinfo/pkg/requestid"
)

const serviceName = "ipinfo"

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg      appConfig
		httpCfg     httpserver.Config
		upstreamCfg upstream.Config
		apiCfg      api.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&upstreamCfg) },
		func() error { return config.Load(&apiCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(appCfg.Env, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if appCfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevel(logger.ParseLevel(appCfg.LogLevel)))
	}
	log := logger.New(logOpts...)
	slog.SetDefault(log)

	m, err := metrics.NewDefault()
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	client := upstream.NewFromConfig(upstreamCfg,
		upstream.WithLogger(log),
		upstream.WithObserver(m),
	)

	store := history.New()
	if err := m.WatchHistory(store.Len); err != nil {
		return fmt.Errorf("register history gauge: %w", err)
	}

	a := api.NewFromConfig(apiCfg, client, client, store,
		api.WithLogger(log),
		api.WithLookupObserver(m),
		api.WithMetricsHandler(m.Handler()),
	)

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("history discarded", logger.Count(store.Len()))
		}),
	)
	return srv.Run(ctx, a.Routes())
}
