package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dreamteam/ipinfo/handler"
	"github.com/dreamteam/ipinfo/internal/upstream"
	"github.com/dreamteam/ipinfo/pkg/logger"
)

const notFoundHint = "Please check API documentation at /"

// failure maps err to a failure envelope. Upstream errors use
// upstreamStatus; anything unclassified is a 500.
func (a *API) failure(ctx handler.Context, err error, upstreamStatus int) handler.Response {
	var (
		status int
		msg    string
		verr   handler.ValidationError
	)
	switch {
	case errors.As(err, &verr):
		status, msg = http.StatusBadRequest, verr.Message
	case errors.Is(err, upstream.ErrUpstream):
		status, msg = upstreamStatus, err.Error()
	default:
		status, msg = http.StatusInternalServerError, "Unexpected error: "+err.Error()
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	r := ctx.Request()
	a.log.LogAttrs(ctx, level, "request failed",
		logger.Error(err),
		logger.Status(status),
		slog.String("path", r.URL.Path),
	)
	return handler.Fail(status, msg)
}

func (a *API) notFound(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, handler.FailWithHint(handler.ErrNotFound.Code, handler.ErrNotFound.Message, notFoundHint))
}

func (a *API) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, handler.Fail(handler.ErrMethodNotAllowed.Code, handler.ErrMethodNotAllowed.Message))
}

func (a *API) render(w http.ResponseWriter, r *http.Request, resp handler.Response) {
	if err := resp.Render(w, r); err != nil {
		a.log.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
	}
}
