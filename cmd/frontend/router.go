package main

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/angeloszaimis/relay-services/internal/handler"
	"github.com/angeloszaimis/relay-services/internal/middleware"
)

func setupRouter(frontendHandler *handler.FrontendHandler, staticDir string, log *slog.Logger) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", frontendHandler.Health).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/api/message", frontendHandler.Message).Methods(http.MethodGet)
	router.HandleFunc("/api/status", frontendHandler.Status).Methods(http.MethodGet)
	router.PathPrefix("/").Handler(handler.Static(staticDir)).Methods(http.MethodGet, http.MethodHead)

	return middleware.Logging(log)(middleware.Recovery(log)(router))
}
