// Package requestid attaches a correlation identifier to every inbound HTTP
// request.
//
// Middleware reuses a well-formed "X-Request-ID" header supplied by the caller
// or generates a new UUIDv4, stores it in the request context and echoes it in
// the response header. FromContext reads it back, and LoggerExtractor plugs it
// into the logger package so every record written while serving the request
// carries a request_id attribute.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// Invalid identifiers (empty, longer than 128 bytes, or containing characters
// outside [A-Za-z0-9_-]) are silently replaced; the package never returns
// errors.
package requestid
