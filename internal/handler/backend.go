package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/angeloszaimis/relay-services/internal/metrics"
)

// BackendHandler serves the backend service's routes. Every route is
// read-only and always answers 200.
type BackendHandler struct {
	logger      *slog.Logger
	environment string
	metrics     metrics.Provider
}

func NewBackendHandler(logger *slog.Logger, environment string, provider metrics.Provider) *BackendHandler {
	return &BackendHandler{
		logger:      logger,
		environment: environment,
		metrics:     provider,
	}
}

func (h *BackendHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:    StatusHealthy,
		Timestamp: FormatTimestamp(time.Now()),
		Service:   BackendHealthService,
	})
}

func (h *BackendHandler) Message(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, MessageResponse{
		Message:     GreetingMessage,
		Timestamp:   FormatTimestamp(time.Now()),
		Version:     APIVersion,
		Environment: h.environment,
	})
}

func (h *BackendHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, StatusResponse{
		Service:   StatusServiceName,
		Status:    StatusRunning,
		Uptime:    h.metrics.Uptime(),
		Memory:    h.metrics.Memory(),
		Timestamp: FormatTimestamp(time.Now()),
	})
}
