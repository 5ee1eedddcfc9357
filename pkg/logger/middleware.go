package logger

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Middleware logs a single record per request once the response is written.
// Server errors are logged at error level, client errors at warn, the rest at
// info. The ipFn argument resolves the caller address; it may be nil.
func Middleware(log *slog.Logger, ipFn func(*http.Request) string) func(http.Handler) http.Handler {
	if log == nil {
		log = NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				Status(status),
				slog.Int("bytes", ww.BytesWritten()),
				Duration(time.Since(start)),
			}
			if ipFn != nil {
				attrs = append(attrs, ClientIP(ipFn(r)))
			}
			log.LogAttrs(r.Context(), level, "http request", attrs...)
		})
	}
}
