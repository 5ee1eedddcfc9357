package api

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dreamteam/ipinfo/handler"
	"github.com/dreamteam/ipinfo/pkg/logger"
)

// recoverer turns a panic into a 500 failure envelope and logs the stack.
func (a *API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			a.log.ErrorContext(r.Context(), "panic recovered",
				logger.Error(fmt.Errorf("%v", rvr)),
				logger.Event("panic"),
				"stack", string(debug.Stack()),
			)

			if r.Header.Get("Connection") != "Upgrade" {
				a.render(w, r, handler.Fail(handler.ErrInternal.Code, handler.ErrInternal.Message))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
