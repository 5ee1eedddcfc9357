package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dreamteam/ipinfo/pkg/logger"
)

// Service names used in logs and metrics.
const (
	ServiceIPv4 = "ipify_v4"
	ServiceIPv6 = "ipify_v6"
	ServiceGeo  = "ip_api"
)

const (
	defaultIPv4Endpoint = "https://api.ipify.org?format=json"
	defaultIPv6Endpoint = "https://api64.ipify.org?format=json"
	defaultGeoEndpoint  = "http://ip-api.com/json/"
	defaultTimeout      = 10 * time.Second

	maxBodySize = 1 << 20
)

// Config holds upstream endpoints and the per-call timeout.
type Config struct {
	IPv4Endpoint string        `env:"IPV4_ENDPOINT" envDefault:"https://api.ipify.org?format=json"`
	IPv6Endpoint string        `env:"IPV6_ENDPOINT" envDefault:"https://api64.ipify.org?format=json"`
	GeoEndpoint  string        `env:"GEO_ENDPOINT" envDefault:"http://ip-api.com/json/"`
	Timeout      time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
}

// Observer receives the outcome of every upstream call. Outcome is
// "success" or the failure Kind.
type Observer interface {
	ObserveUpstream(service, outcome string, d time.Duration)
}

// Client calls ipify and ip-api.com. It is safe for concurrent use.
type Client struct {
	http     *http.Client
	timeout  time.Duration
	ipv4URL  string
	ipv6URL  string
	geoURL   string
	log      *slog.Logger
	observer Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithIPv4Endpoint(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.ipv4URL = u
		}
	}
}

func WithIPv6Endpoint(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.ipv6URL = u
		}
	}
}

// WithGeoEndpoint sets the geolocation base URL; the IP is appended as the
// last path segment.
func WithGeoEndpoint(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.geoURL = u
		}
	}
}

// WithTimeout bounds every upstream call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New creates a Client with the public endpoints and a 10 second timeout.
func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{},
		timeout: defaultTimeout,
		ipv4URL: defaultIPv4Endpoint,
		ipv6URL: defaultIPv6Endpoint,
		geoURL:  defaultGeoEndpoint,
		log:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("upstream"))
	return c
}

// NewFromConfig creates a Client from cfg; opts are applied after it.
func NewFromConfig(cfg Config, opts ...Option) *Client {
	base := []Option{
		WithIPv4Endpoint(cfg.IPv4Endpoint),
		WithIPv6Endpoint(cfg.IPv6Endpoint),
		WithGeoEndpoint(cfg.GeoEndpoint),
		WithTimeout(cfg.Timeout),
	}
	return New(append(base, opts...)...)
}

// get performs a GET bounded by the client timeout and returns the status
// code and the size limited body. Errors are transport or read failures.
func (c *Client) get(ctx context.Context, service, rawURL string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "upstream call failed",
			logger.Upstream(service), logger.Duration(time.Since(start)), logger.Error(err))
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.log.DebugContext(ctx, "upstream call completed",
		logger.Upstream(service), logger.Status(resp.StatusCode), logger.Duration(time.Since(start)))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func (c *Client) observe(service string, err error, d time.Duration) {
	if c.observer == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = string(KindOther)
		var ue *Error
		if errors.As(err, &ue) {
			outcome = string(ue.Kind)
		}
	}
	c.observer.ObserveUpstream(service, outcome, d)
}
