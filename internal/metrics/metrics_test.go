package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamteam/ipinfo/internal/metrics"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.ObserveLookup("lookup")
	m.ObserveLookup("lookup")
	m.ObserveLookup("myip")
	m.ObserveUpstream("ip_api", "success", 120*time.Millisecond)
	m.ObserveUpstream("ip_api", "timeout", 10*time.Second)

	expected := `
# HELP ipinfo_lookups_total Successful lookups by endpoint.
# TYPE ipinfo_lookups_total counter
ipinfo_lookups_total{endpoint="lookup"} 2
ipinfo_lookups_total{endpoint="myip"} 1
# HELP ipinfo_upstream_requests_total Upstream calls by service and outcome.
# TYPE ipinfo_upstream_requests_total counter
ipinfo_upstream_requests_total{outcome="success",service="ip_api"} 1
ipinfo_upstream_requests_total{outcome="timeout",service="ip_api"} 1
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"ipinfo_lookups_total", "ipinfo_upstream_requests_total")
	assert.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "ipinfo_upstream_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_WatchHistory(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	size := 3
	require.NoError(t, m.WatchHistory(func() int { return size }))

	expected := `
# HELP ipinfo_history_size Records currently held in the lookup history.
# TYPE ipinfo_history_size gauge
ipinfo_history_size 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "ipinfo_history_size"))

	assert.Error(t, m.WatchHistory(func() int { return 0 }), "second gauge with the same name must be rejected")
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)

	_, err = metrics.New(reg)
	assert.Error(t, err)
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m, err := metrics.NewDefault()
	require.NoError(t, err)
	m.ObserveLookup("myip")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ipinfo_lookups_total{endpoint="myip"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
