package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/entity"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/errs"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/ports"
	"github.com/berkeshop/ecommerce-orders/internal/orders/infra/httpx/middlewares"
)

// Handler exposes the order service over HTTP.
type Handler struct {
	orders ports.OrderService
}

func NewHandler(orders ports.OrderService) *Handler {
	return &Handler{orders: orders}
}

// CreateOrder runs the order-creation saga for the authenticated customer.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	customerID := middlewares.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeProblem(w, http.StatusUnauthorized, "Missing Customer Identity", "authenticated customer id is required")
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "JSON Parse Error", "JSON request is not correct")
		return
	}

	if req.Reference == "" || req.PaymentMethod == "" {
		writeProblem(w, http.StatusBadRequest, "Validation Error", "reference and paymentMethod are required")
		return
	}

	slog.InfoContext(r.Context(), "creating order", "customer_id", customerID, "reference", req.Reference)

	summary, err := h.orders.CreateOrder(r.Context(), ports.CreateOrderRequest{
		Reference:     req.Reference,
		PaymentMethod: req.PaymentMethod,
	}, customerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, OrderSummaryResponse{
		ID:        summary.ID,
		Reference: summary.Reference,
	})
}

// GetAllOrders lists every order.
func (h *Handler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.GetAllOrders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, mapOrderToResponse(&order))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetOrderByID returns a single order.
func (h *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeProblem(w, http.StatusBadRequest, "Validation Error", "order id is required")
		return
	}

	order, err := h.orders.GetOrderByID(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

func mapOrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:            order.ID,
		Reference:     order.Reference,
		CustomerID:    order.CustomerID,
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		Status:        string(order.Status),
		CreatedDate:   order.CreatedDate,
	}
}

// writeError translates the typed error taxonomy into HTTP problem details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		externalErr *errs.ExternalServiceError
		authErr     *errs.AuthMismatchError
		basketErr   *errs.EmptyBasketError
		paymentErr  *errs.PaymentProcessingError
		invalidErr  *errs.InvalidOrderRequestError
		notFoundErr *errs.OrderNotFoundError
	)

	switch {
	case errors.As(err, &externalErr):
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", err.Error())
	case errors.As(err, &authErr):
		writeProblem(w, http.StatusBadRequest, "Invalid Order Request", err.Error())
	case errors.As(err, &basketErr):
		writeProblem(w, http.StatusBadRequest, "Invalid Order Request", err.Error())
	case errors.As(err, &paymentErr):
		writeProblem(w, http.StatusBadGateway, "Payment Failed", err.Error())
	case errors.As(err, &invalidErr):
		writeProblem(w, http.StatusBadRequest, "Invalid Order Request", err.Error())
	case errors.As(err, &notFoundErr):
		writeProblem(w, http.StatusNotFound, "Order Not Found", err.Error())
	default:
		slog.ErrorContext(r.Context(), "unexpected error handling request", "path", r.URL.Path, "error", err)
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "an unexpected error occurred")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeJSON(w, status, ProblemResponse{
		Title:     title,
		Status:    status,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
