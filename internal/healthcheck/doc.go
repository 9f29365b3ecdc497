// Package healthcheck periodically probes the backend service's /health
// endpoint from the frontend and logs availability transitions. Probe results
// are informational only; the relay never consults them.
package healthcheck
