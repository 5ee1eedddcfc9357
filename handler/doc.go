// Package handler provides typed HTTP handlers that return JSON envelopes.
//
// A HandlerFunc receives a Context and a request struct populated by binders
// and returns a Response. Wrap adapts it to http.HandlerFunc:
//
//	type lookupRequest struct {
//		IP string `path:"ip"`
//	}
//
//	func lookup(ctx handler.Context, req lookupRequest) handler.Response {
//		if req.IP == "" {
//			return handler.Fail(http.StatusBadRequest, "IP address is required")
//		}
//		return handler.JSON(payload)
//	}
//
//	r.Get("/api/lookup/{ip}", handler.Wrap(lookup,
//		handler.WithBinders[lookupRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[lookupRequest](handler.NewErrorHandler(log)),
//	))
//
// Every failure body shares the Failure shape: a false "success" flag and an
// "error" message. Binding and rendering errors that escape a handler are
// converted by the ErrorHandler; NewErrorHandler maps ValidationError to 400,
// HTTPError to its own status and anything else to a generic 500.
package handler
