// Package upstream talks to the third-party HTTP APIs the service depends on:
// ipify for discovering the host's own public address and ip-api.com for
// geolocation.
//
// Every call is a single GET bounded by the client timeout (10 seconds by
// default). There are no retries and no caching. Failures are reported as
// *Error values whose Kind tells the cause apart and whose message is meant
// to be shown to API callers; all of them match ErrUpstream with errors.Is.
// IPv6 discovery is best effort and reports an Unavailable result instead of
// failing.
package upstream
