// Package server wires HTTP handlers into ServeMuxes for the relay listener
// and the admin listener.
package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes returns the relay mux. Every path upgrades to WebSocket.
func SetupRoutes(h *Handler, cfg Config, log *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", WebSocketHandler(h, cfg, log))
	return mux
}

// SetupAdminRoutes returns the mux for health, metrics and the chat page.
func SetupAdminRoutes(gatherer prometheus.Gatherer, cfg Config, log *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", HealthHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/chat", ChatPageHandler(cfg.Port, log))
	return mux
}
