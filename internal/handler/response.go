package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/angeloszaimis/relay-services/internal/metrics"
)

// TimestampLayout renders UTC instants with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const (
	StatusHealthy = "healthy"
	StatusRunning = "running"

	BackendHealthService = "backend-api"
	StatusServiceName    = "DevOps Backend API"
	GreetingMessage      = "Hello from Backend API!"
	APIVersion           = "1.0.0"

	BackendUnavailable = "Could not connect to backend service"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service,omitempty"`
}

type MessageResponse struct {
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type StatusResponse struct {
	Service   string              `json:"service"`
	Status    string              `json:"status"`
	Uptime    float64             `json:"uptime"`
	Memory    metrics.MemoryUsage `json:"memory"`
	Timestamp string              `json:"timestamp"`
}

// ErrorEnvelope replaces the backend payload whenever a relay fails.
type ErrorEnvelope struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp,omitempty"`
	BackendURL string `json:"backendUrl,omitempty"`
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", slog.Any("err", err))
	}
}
