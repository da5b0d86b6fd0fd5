// Package httpapi assembles the application router: platform middleware,
// health and metrics endpoints, and the policy feature routes.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"policyhub/internal/platform/middleware"
	"policyhub/internal/policy/handler"
)

// NewRouter wires all endpoints. Read endpoints are public; snapshot ingest
// sits behind bearer-token authentication.
func NewRouter(h *handler.Handler, validator middleware.JWTValidator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	h.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))
		h.RegisterAdmin(r)
	})

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
