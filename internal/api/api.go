package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dreamteam/ipinfo/internal/history"
	"github.com/dreamteam/ipinfo/internal/upstream"
	"github.com/dreamteam/ipinfo/pkg/clientip"
	"github.com/dreamteam/ipinfo/pkg/logger"
	"github.com/dreamteam/ipinfo/pkg/requestid"
)

const (
	Version     = "2.0.0"
	Team        = "THE DREAM TEAM"
	Application = "IP Address Information API"
	ServiceName = "IP Info API"

	defaultCourtesyDelay = 500 * time.Millisecond

	// timestampLayout is ISO-8601 local time with microseconds.
	timestampLayout = "2006-01-02T15:04:05.000000"
)

// IPResolver discovers the public addresses of the host.
type IPResolver interface {
	FetchIPv4(ctx context.Context) (string, error)
	FetchIPv6(ctx context.Context) upstream.IPv6Result
}

// GeoLocator returns geolocation details for an address.
type GeoLocator interface {
	FetchDetails(ctx context.Context, ip string) (upstream.GeoDetails, error)
}

// LookupObserver is notified of every successful lookup.
type LookupObserver interface {
	ObserveLookup(endpoint string)
}

// Endpoint labels passed to LookupObserver.
const (
	EndpointMyIP   = "myip"
	EndpointLookup = "lookup"
)

// API holds the handler dependencies.
type API struct {
	resolver IPResolver
	geo      GeoLocator
	store    *history.Store

	log      *slog.Logger
	observer LookupObserver
	metrics  http.Handler
	delay    time.Duration
	now      func() time.Time
}

// Option configures an API.
type Option func(*API)

func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.log = l
		}
	}
}

// WithCourtesyDelay sets the pause of the self lookup. Zero disables it.
func WithCourtesyDelay(d time.Duration) Option {
	return func(a *API) {
		if d >= 0 {
			a.delay = d
		}
	}
}

func WithLookupObserver(o LookupObserver) Option {
	return func(a *API) { a.observer = o }
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(a *API) { a.metrics = h }
}

// WithClock replaces time.Now for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *API) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an API. The resolver, locator and store are required.
func New(resolver IPResolver, geo GeoLocator, store *history.Store, opts ...Option) *API {
	a := &API{
		resolver: resolver,
		geo:      geo,
		store:    store,
		log:      logger.NewNop(),
		delay:    defaultCourtesyDelay,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(logger.Component("api"))
	return a
}

// NewFromConfig creates an API from cfg; opts are applied after it.
func NewFromConfig(cfg Config, resolver IPResolver, geo GeoLocator, store *history.Store, opts ...Option) *API {
	return New(resolver, geo, store, append([]Option{WithCourtesyDelay(cfg.CourtesyDelay)}, opts...)...)
}

// Routes builds the router.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		logger.Middleware(a.log, clientip.FromRequest),
		a.recoverer,
	)

	r.NotFound(a.notFound)
	r.MethodNotAllowed(a.methodNotAllowed)

	r.Get("/", a.home())
	r.Get("/health", a.health())

	r.Route("/api", func(r chi.Router) {
		r.Get("/myip", a.myIP())
		r.Get("/lookup/", a.lookup())
		r.Get("/lookup/{ip}", a.lookup())
		r.Get("/history", a.history())
		r.Delete("/history", a.clearHistory())
		r.Get("/stats", a.stats())
	})

	if a.metrics != nil {
		r.Method(http.MethodGet, "/metrics", a.metrics)
	}
	return r
}

func (a *API) timestamp() string {
	return a.now().Format(timestampLayout)
}

func (a *API) observe(endpoint string) {
	if a.observer != nil {
		a.observer.ObserveLookup(endpoint)
	}
}

// pause waits for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
