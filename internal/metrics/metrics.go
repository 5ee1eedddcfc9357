// Package metrics exposes Prometheus collectors for lookups, upstream calls
// and the history size.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ipinfo"

type Metrics struct {
	reg *prometheus.Registry

	lookups          *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewDefault creates Metrics on a fresh registry that also carries the Go
// runtime and process collectors.
func NewDefault() (*Metrics, error) {
	reg := prometheus.NewRegistry()
	if err := errors.Join(
		reg.Register(collectors.NewGoCollector()),
		reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})),
	); err != nil {
		return nil, err
	}
	return New(reg)
}

// New creates Metrics and registers its collectors with reg.
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		reg: reg,
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Successful lookups by endpoint.",
		}, []string{"endpoint"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream calls by service and outcome.",
		}, []string{"service", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream call latency.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"service"}),
	}

	if err := errors.Join(
		reg.Register(m.lookups),
		reg.Register(m.upstreamRequests),
		reg.Register(m.upstreamDuration),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// ObserveLookup counts a successful lookup served by endpoint.
func (m *Metrics) ObserveLookup(endpoint string) {
	m.lookups.WithLabelValues(endpoint).Inc()
}

// ObserveUpstream records one upstream call.
func (m *Metrics) ObserveUpstream(service, outcome string, d time.Duration) {
	m.upstreamRequests.WithLabelValues(service, outcome).Inc()
	m.upstreamDuration.WithLabelValues(service).Observe(d.Seconds())
}

// WatchHistory registers a gauge that reports size() on every scrape.
func (m *Metrics) WatchHistory(size func() int) error {
	return m.reg.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "history_size",
		Help:      "Records currently held in the lookup history.",
	}, func() float64 { return float64(size()) }))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
