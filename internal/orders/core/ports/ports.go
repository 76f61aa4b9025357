// Package ports declares the interfaces the order orchestrator depends on.
// Infrastructure adapters (postgres, HTTP clients, kafka) implement them;
// tests swap in fakes.
package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/entity"
)

// CustomerProfileProvider fetches the profile of a customer from the
// customer service. Implementations return *errs.ExternalServiceError when
// the service is unreachable or answers with no body.
type CustomerProfileProvider interface {
	GetProfile(ctx context.Context, customerID string) (*entity.CustomerProfile, error)
}

// BasketProvider fetches basket contents and the authoritative basket total
// from the basket service. The total is never recomputed locally — that
// avoids price drift between services.
type BasketProvider interface {
	GetBasket(ctx context.Context, customerID string) (*entity.Basket, error)
	GetTotalPrice(ctx context.Context, customerID string) (decimal.Decimal, error)
}

// PaymentGateway charges the customer's registered payment instrument.
// Any error means the charge did not happen; a nil error means money moved.
type PaymentGateway interface {
	Charge(ctx context.Context, customerID string) (*entity.PaymentResult, error)
}

// OrderStore persists orders and their lines.
type OrderStore interface {
	// CreateOrder inserts the order and all of its lines in a single
	// transaction and returns the order with its assigned id.
	CreateOrder(ctx context.Context, order *entity.Order, lines []entity.OrderLine) (*entity.Order, error)

	// UpdateStatus persists a status transition as a separate, later write.
	UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) error

	GetByID(ctx context.Context, orderID string) (*entity.Order, error)
	List(ctx context.Context) ([]entity.Order, error)
}

// EventPublisher hands a domain event to the message broker and waits for
// the synchronous acknowledgment. Delivery is at-least-once.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *entity.OrderCreatedEvent) error
	PublishOrderReceived(ctx context.Context, event *entity.OrderReceivedEvent) error
}

// OrderService is the inbound port exposed to the HTTP layer.
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest, customerID string) (*entity.OrderSummary, error)
	GetAllOrders(ctx context.Context) ([]entity.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*entity.Order, error)
}

// CreateOrderRequest is the caller's input to order creation. Reference is
// client-supplied and not deduplicated by this service.
type CreateOrderRequest struct {
	Reference     string
	PaymentMethod string
}
