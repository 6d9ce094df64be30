// Package httpapi wires the HTTP surface: middleware chain, feature
// handlers, health and metrics endpoints.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	connectorhandler "orgregistry/internal/connector/handler"
	participanthandler "orgregistry/internal/participant/handler"
	"orgregistry/internal/platform/middleware"
)

// NewRouter assembles the service's router.
func NewRouter(
	participants *participanthandler.Handler,
	connectors *connectorhandler.Handler,
	roleValidator middleware.RoleValidator,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestMeta)
	r.Use(middleware.ResolveActiveRole(roleValidator, logger))

	participants.Register(r)
	connectors.Register(r)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
