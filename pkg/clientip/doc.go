// Package clientip determines the address of the caller of an HTTP request.
//
// Proxy headers are consulted in order (CF-Connecting-IP, X-Forwarded-For,
// X-Real-IP) before falling back to the connection's RemoteAddr. Values that
// do not parse as an IP address are skipped. Middleware stores the result in
// the request context for later use by request logging.
package clientip
