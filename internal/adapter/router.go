package adapter

import (
	"log/slog"
	"net/http"
	"plant-pal/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API behind the shared middleware stack, plus
// /healthz and, when h has metrics, /metrics.
func NewRouter(h *Handler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware)
	}
	r.Use(Session(h.Auth))

	r.Get("/healthz", h.Health)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}
	api.HandlerWithOptions(h, api.ChiServerOptions{
		BaseRouter:       r,
		AuthMiddlewares:  []api.MiddlewareFunc{RequireAuth},
		ErrorHandlerFunc: h.ParamError,
	})
	return r
}
