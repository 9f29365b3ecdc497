// Package handler implements the HTTP handlers of both services: the backend's
// health, message and status routes, and the frontend's local health route,
// static file serving and the relay routes that forward to the backend.
package handler
