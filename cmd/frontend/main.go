// Command frontend serves the static site and relays API calls to the backend.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/angeloszaimis/relay-services/config"
	"github.com/angeloszaimis/relay-services/internal/backend"
	"github.com/angeloszaimis/relay-services/internal/handler"
	"github.com/angeloszaimis/relay-services/internal/healthcheck"
	"github.com/angeloszaimis/relay-services/internal/httpserver"
	"github.com/angeloszaimis/relay-services/pkg/logger"
)

func main() {
	cfg, err := config.Load(config.ServiceFrontend)
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment, config.ServiceFrontend)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client, err := newBackendClient(cfg)
	if err != nil {
		log.Error("Failed to create backend client", slog.Any("err", err))
		os.Exit(1)
	}

	if _, err := startHealthCheck(ctx, cfg, client, log); err != nil {
		log.Error("Failed to start health check", slog.Any("err", err))
		os.Exit(1)
	}

	frontendHandler := handler.NewFrontendHandler(log, client, cfg.Relay.UniformErrors)

	// Relayed calls carry no timeout, so neither may the response writer.
	srv, err := httpserver.New(cfg.Address(), setupRouter(frontendHandler, cfg.Static.Dir, log), log,
		httpserver.WithWriteTimeout(0),
		httpserver.WithErrorLog(log))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("Frontend server starting",
		slog.Int("port", cfg.Server.Port),
		slog.String("backend", client.URL().String()),
		slog.String("static_dir", cfg.Static.Dir))

	if err := srv.Run(ctx); err != nil {
		log.Error("Frontend server stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("Frontend server stopped")
}

func newBackendClient(cfg *config.Config) (*backend.Client, error) {
	u, err := url.Parse(cfg.Upstream.URL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url %q: %w", cfg.Upstream.URL, err)
	}

	return backend.New(u, nil), nil
}

// startHealthCheck launches the backend monitor unless the interval is zero,
// in which case it returns a nil monitor.
func startHealthCheck(ctx context.Context, cfg *config.Config, client *backend.Client, log *slog.Logger) (*healthcheck.Monitor, error) {
	interval, err := cfg.HealthCheckInterval()
	if err != nil {
		return nil, err
	}

	if interval <= 0 {
		log.Info("Backend health check disabled")
		return nil, nil
	}

	monitor := healthcheck.NewMonitor(client, client.Endpoint(backend.HealthPath), log)
	go monitor.Run(ctx, interval)

	return monitor, nil
}
