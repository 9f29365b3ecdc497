// Package httpserver wraps net/http.Server with listen-address validation,
// per-service timeout options and a bounded graceful shutdown.
package httpserver
