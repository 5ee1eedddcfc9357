package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreamteam/ipinfo/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"remote addr", nil, "198.51.100.4:5123", "198.51.100.4"},
		{"remote addr without port", nil, "198.51.100.4", "198.51.100.4"},
		{"ipv6 remote addr", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "203.0.113.1", "X-Forwarded-For": "203.0.113.2"}, "10.0.0.1:1", "203.0.113.1"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "garbage, 203.0.113.9, 10.0.0.2"}, "10.0.0.1:1", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": " 203.0.113.5 "}, "10.0.0.1:1", "203.0.113.5"},
		{"invalid header falls back", map[string]string{"X-Real-IP": "not-an-ip"}, "10.0.0.1:1", "10.0.0.1"},
		{"ipv4 mapped ipv6", map[string]string{"X-Real-IP": "::ffff:192.0.2.1"}, "", "192.0.2.1"},
		{"nothing valid", nil, "pipe", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
		assert.Equal(t, got, clientip.FromRequest(r))
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.77")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "203.0.113.77", got)
}

func TestFromRequestWithoutMiddleware(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:80"
	assert.Equal(t, "192.0.2.10", clientip.FromRequest(r))
}
