// Package middleware holds the http.Handler wrappers shared by both services:
// request ids with access logging, panic recovery and CORS.
package middleware
