// Package backend implements the HTTP client the frontend uses to reach the
// backend service. Each relayed route has its own method returning the raw
// JSON body on a 2xx response, or an error describing the transport failure,
// the non-2xx status, or the malformed payload.
package backend
