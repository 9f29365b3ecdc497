package main

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/angeloszaimis/relay-services/internal/handler"
	"github.com/angeloszaimis/relay-services/internal/middleware"
)

func setupRouter(backendHandler *handler.BackendHandler, log *slog.Logger) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", backendHandler.Health).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/api/message", backendHandler.Message).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/api/status", backendHandler.Status).Methods(http.MethodGet, http.MethodHead)

	// Wrapped outside the router so preflight and unmatched requests see them too.
	return middleware.Logging(log)(middleware.Recovery(log)(middleware.CORS()(router)))
}
