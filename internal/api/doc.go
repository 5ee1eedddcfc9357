// Package api is the HTTP surface of the service. It routes requests with
// chi, calls the upstream resolvers, records successful lookups in the
// history store and renders JSON envelopes.
//
// Every successful body carries "success": true and a timestamp; failures
// carry "success": false and an "error" string. Upstream failures are
// reported as 400 for an explicit lookup and as 500 for the self lookup.
package api
