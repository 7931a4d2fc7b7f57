package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/storefront/internal/pkg/metrics"
	"github.com/jcmexdev/storefront/internal/storefront/infra/httpx/middlewares"
)

// NewRouter wires the storefront routes. m may be nil in tests.
func NewRouter(handler *Handler, m *metrics.ServerMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}

	r.Get("/healthz", handler.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Post("/products/{id}/quote", handler.Quote)
	r.Get("/orders/{id}/view", handler.OrderView)
	r.Post("/orders/{id}/cancellation", handler.RequestCancellation)

	return r
}
