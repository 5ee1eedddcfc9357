package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dreamteam/ipinfo/binder"
	"github.com/dreamteam/ipinfo/pkg/logger"
)

// ErrorInfo is the classification of an error for rendering.
type ErrorInfo struct {
	StatusCode int
	Message    string
	LogLevel   slog.Level
}

// Classify maps err to a status code and a caller-facing message. Messages
// of unclassified errors are not exposed.
func Classify(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: ErrInternal.Code,
		Message:    ErrInternal.Message,
	}

	var (
		validationErr ValidationError
		httpErr       HTTPError
	)
	switch {
	case errors.As(err, &validationErr):
		info.StatusCode = http.StatusBadRequest
		info.Message = validationErr.Message
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Error()
	case errors.Is(err, binder.ErrInvalidPath), errors.Is(err, binder.ErrInvalidQuery):
		info.StatusCode = http.StatusBadRequest
		info.Message = err.Error()
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler returns an ErrorHandler rendering Failure bodies. A nil
// logger disables logging.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(ctx Context, err error) {
		info := Classify(err)
		r := ctx.Request()

		log.LogAttrs(ctx, info.LogLevel, "request error",
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		resp := Fail(info.StatusCode, info.Message)
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(ctx, "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
