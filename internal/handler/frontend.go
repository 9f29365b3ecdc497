package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/angeloszaimis/relay-services/internal/backend"
)

// BackendClient is the frontend's view of the backend service: one call per
// relayed route, returning the raw JSON body or the reason the call failed.
type BackendClient interface {
	Message(ctx context.Context) (json.RawMessage, error)
	Status(ctx context.Context) (json.RawMessage, error)
	Endpoint(path string) string
}

type relayRoute struct {
	path  string
	fetch func(BackendClient, context.Context) (json.RawMessage, error)
	// detailed adds timestamp and backendUrl to the error envelope.
	detailed bool
}

var (
	messageRoute = relayRoute{
		path:     backend.MessagePath,
		fetch:    BackendClient.Message,
		detailed: true,
	}
	statusRoute = relayRoute{
		path:  backend.StatusPath,
		fetch: BackendClient.Status,
	}
)

// FrontendHandler serves the frontend's health route and relays the message
// and status routes to the backend.
type FrontendHandler struct {
	logger        *slog.Logger
	client        BackendClient
	uniformErrors bool
}

// NewFrontendHandler creates the frontend handler. With uniformErrors set,
// both relay routes report failures with timestamp and backendUrl; otherwise
// only the message route does.
func NewFrontendHandler(logger *slog.Logger, client BackendClient, uniformErrors bool) *FrontendHandler {
	return &FrontendHandler{
		logger:        logger,
		client:        client,
		uniformErrors: uniformErrors,
	}
}

func (h *FrontendHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:    StatusHealthy,
		Timestamp: FormatTimestamp(time.Now()),
	})
}

func (h *FrontendHandler) Message(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, messageRoute)
}

func (h *FrontendHandler) Status(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, statusRoute)
}

// relay makes exactly one backend call. The call is detached from the client
// connection, so it completes even if the client goes away.
func (h *FrontendHandler) relay(w http.ResponseWriter, r *http.Request, route relayRoute) {
	target := h.client.Endpoint(route.path)
	log := h.logger.With(slog.String("route", route.path), slog.String("backend_url", target))

	log.Info("Relaying request to backend")

	ctx := context.WithoutCancel(r.Context())
	body, err := route.fetch(h.client, ctx)
	if err != nil {
		log.Error("Error connecting to backend", slog.Any("err", err))

		envelope := ErrorEnvelope{
			Error:   BackendUnavailable,
			Message: err.Error(),
		}
		if route.detailed || h.uniformErrors {
			envelope.Timestamp = FormatTimestamp(time.Now())
			envelope.BackendURL = target
		}

		writeJSON(w, h.logger, http.StatusInternalServerError, envelope)
		return
	}

	log.Debug("Backend data received", slog.Int("bytes", len(body)))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Warn("Failed to write relayed response", slog.Any("err", err))
	}
}
