// Command backend serves the health, message and status API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/angeloszaimis/relay-services/config"
	"github.com/angeloszaimis/relay-services/internal/handler"
	"github.com/angeloszaimis/relay-services/internal/httpserver"
	"github.com/angeloszaimis/relay-services/internal/metrics"
	"github.com/angeloszaimis/relay-services/pkg/logger"
)

func main() {
	cfg, err := config.Load(config.ServiceBackend)
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment, config.ServiceBackend)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	backendHandler := handler.NewBackendHandler(log, cfg.Server.Environment, metrics.NewRuntimeProvider())

	srv, err := httpserver.New(cfg.Address(), setupRouter(backendHandler, log), log,
		httpserver.WithErrorLog(log))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("Backend API starting", slog.Int("port", cfg.Server.Port))

	if err := srv.Run(ctx); err != nil {
		log.Error("Backend API stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("Backend API stopped")
}
