package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/berkeshop/ecommerce-orders/internal/orders/infra/httpx/middlewares"
)

// NewRouter wires the order endpoints. The whole router is wrapped with
// otelhttp so every request gets a server span, which the saga log and the
// slog handler both read their trace ids from.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CustomerIdentity)

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", handler.CreateOrder)
		r.Get("/", handler.GetAllOrders)
		r.Get("/{id}", handler.GetOrderByID)
	})

	return otelhttp.NewHandler(r, "order-service")
}
