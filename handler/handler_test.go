package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamteam/ipinfo/binder"
	"github.com/dreamteam/ipinfo/handler"
	"github.com/dreamteam/ipinfo/pkg/logger"
)

type failingResponse struct{ err error }

func (f failingResponse) Render(http.ResponseWriter, *http.Request) error { return f.err }

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) handler.Failure {
	t.Helper()
	var f handler.Failure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	return f
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("renders handler response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
			assert.NotNil(t, ctx.Request())
			assert.NotNil(t, ctx.ResponseWriter())
			return handler.JSON(map[string]any{"success": true}, handler.WithStatus(http.StatusCreated))
		})

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("nil response becomes 500", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil })

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		f := decodeFailure(t, rec)
		assert.False(t, f.Success)
		assert.Equal(t, "Internal server error", f.Error)
	})

	t.Run("render error is handled", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response {
			return failingResponse{err: handler.HTTPError{Code: http.StatusTeapot, Message: "short and stout"}}
		})

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "short and stout", decodeFailure(t, rec).Error)
	})

	t.Run("binders populate request", func(t *testing.T) {
		t.Parallel()
		type req struct {
			IP    string `path:"ip"`
			Limit int    `query:"limit"`
		}

		r := chi.NewRouter()
		r.Get("/lookup/{ip}", handler.Wrap(func(_ handler.Context, in req) handler.Response {
			return handler.JSON(in)
		}, handler.WithBinders[req](binder.Path(chi.URLParam), binder.Query())))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lookup/1.1.1.1?limit=3", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"IP":"1.1.1.1","Limit":3}`, rec.Body.String())
	})

	t.Run("binder error is a 400", func(t *testing.T) {
		t.Parallel()
		type req struct {
			Limit int `query:"limit"`
		}
		called := false
		h := handler.Wrap(func(handler.Context, req) handler.Response {
			called = true
			return handler.JSON(nil)
		}, handler.WithBinders[req](binder.Query()))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/?limit=abc", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeFailure(t, rec).Error, "invalid query parameter")
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[struct{}] {
			return func(next handler.HandlerFunc[struct{}]) handler.HandlerFunc[struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response {
			order = append(order, "handler")
			return handler.JSON(nil)
		}, handler.WithDecorators(mark("outer"), mark("inner")))

		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil },
			handler.WithErrorHandler[struct{}](func(ctx handler.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusBadGateway)
			}),
		)

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestFail(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Fail(http.StatusBadRequest, "IP address is required").Render(rec, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"IP address is required"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, handler.FailWithHint(http.StatusNotFound, "Endpoint not found", "see /").Render(rec, nil))
	assert.JSONEq(t, `{"success":false,"error":"Endpoint not found","message":"see /"}`, rec.Body.String())
}

func TestJSONEncodingError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := handler.JSON(map[string]any{"bad": make(chan int)}).Render(rec, nil)
	require.Error(t, err)
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
		level   slog.Level
	}{
		{"validation", handler.NewValidationError("limit", "Limit must be between 1 and 100"), 400, "Limit must be between 1 and 100", slog.LevelWarn},
		{"wrapped validation", fmt.Errorf("wrap: %w", handler.NewValidationError("ip", "IP address is required")), 400, "IP address is required", slog.LevelWarn},
		{"http error", handler.ErrNotFound, 404, "Endpoint not found", slog.LevelWarn},
		{"http error without message", handler.HTTPError{Code: http.StatusConflict}, 409, "Conflict", slog.LevelWarn},
		{"binder", fmt.Errorf("%w: limit", binder.ErrInvalidQuery), 400, "invalid query parameter: limit", slog.LevelWarn},
		{"unknown", errors.New("db exploded"), 500, "Internal server error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info := handler.Classify(tt.err)
			assert.Equal(t, tt.status, info.StatusCode)
			assert.Equal(t, tt.message, info.Message)
			assert.Equal(t, tt.level, info.LogLevel)
		})
	}
}

func TestNewErrorHandlerLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	eh := handler.NewErrorHandler(logger.New(logger.WithOutput(&buf)))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	eh(handler.NewContext(rec, req), errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), `"path":"/api/history"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}
