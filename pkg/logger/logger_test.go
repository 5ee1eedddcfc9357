package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamteam/ipinfo/pkg/logger"
)

type ctxKey struct{}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m))
	return m
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with static attrs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithFormat(logger.FormatJSON),
			logger.WithAttr(slog.String("service", "ipinfo")),
		)
		log.Info("hello", logger.IP("8.8.8.8"))

		m := decodeLine(t, &buf)
		assert.Equal(t, "hello", m["msg"])
		assert.Equal(t, "ipinfo", m["service"])
		assert.Equal(t, "8.8.8.8", m["ip"])
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Zero(t, buf.Len())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("context extractors inject values", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				v, ok := ctx.Value(ctxKey{}).(string)
				return slog.String("trace", v), ok
			}),
		)
		ctx := context.WithValue(context.Background(), ctxKey{}, "t-1")
		log.With(logger.Component("test")).InfoContext(ctx, "traced")

		m := decodeLine(t, &buf)
		assert.Equal(t, "t-1", m["trace"])
		assert.Equal(t, "test", m["component"])
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env      string
		wantEnv  string
		wantJSON bool
	}{
		{"production", logger.EnvProduction, true},
		{"prod", logger.EnvProduction, true},
		{"stage", logger.EnvStaging, true},
		{"", logger.EnvDevelopment, false},
		{"local", logger.EnvDevelopment, false},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment(tt.env, "ipinfo"))
			log.Info("x")

			out := buf.String()
			if tt.wantJSON {
				assert.True(t, strings.HasPrefix(out, "{"), out)
			} else {
				assert.Contains(t, out, "msg=x")
			}
			assert.Contains(t, out, tt.wantEnv)
			assert.Contains(t, out, "ipinfo")
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
}

func TestAttrs(t *testing.T) {
	t.Parallel()
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
	assert.Equal(t, slog.Attr{}, logger.RequestID(""))
	assert.Equal(t, slog.Attr{}, logger.ClientIP(""))
	assert.Equal(t, int64(404), logger.Status(404).Value.Int64())
	assert.Equal(t, int64(3), logger.Count(3).Value.Int64())
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
	assert.Equal(t, "ip-api", logger.Upstream("ip-api").Value.String())
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"ok", http.StatusOK, "INFO"},
		{"client error", http.StatusBadRequest, "WARN"},
		{"server error", http.StatusInternalServerError, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelDebug))

			h := logger.Middleware(log, func(*http.Request) string { return "203.0.113.7" })(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					_, _ = w.Write([]byte("{}"))
				}),
			)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

			m := decodeLine(t, &buf)
			assert.Equal(t, tt.wantLevel, m["level"])
			assert.Equal(t, "GET", m["method"])
			assert.Equal(t, "/api/stats", m["path"])
			assert.EqualValues(t, tt.status, m["status"])
			assert.EqualValues(t, 2, m["bytes"])
			assert.Equal(t, "203.0.113.7", m["client_ip"])
		})
	}

	t.Run("implicit 200", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		h := logger.Middleware(log, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		m := decodeLine(t, &buf)
		assert.EqualValues(t, http.StatusOK, m["status"])
		assert.NotContains(t, m, "client_ip")
	})
}
