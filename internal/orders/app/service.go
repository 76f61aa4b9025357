// Package app implements the order orchestration service: the sequential
// saga that validates customer and basket state, persists the order, charges
// the payment gateway and publishes the resulting domain events.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/berkeshop/ecommerce-orders/internal/coordinator"
	"github.com/berkeshop/ecommerce-orders/internal/coordinator/sagalog"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/entity"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/errs"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/ports"
)

// Service orchestrates order creation and answers order queries. It holds no
// state across requests; everything lives in the order store.
type Service struct {
	store     ports.OrderStore
	customers ports.CustomerProfileProvider
	baskets   ports.BasketProvider
	payments  ports.PaymentGateway
	publisher ports.EventPublisher
	sagaLog   sagalog.Repository // nil-safe: transitions are not audited if nil
}

var _ ports.OrderService = (*Service)(nil)

func NewService(
	store ports.OrderStore,
	customers ports.CustomerProfileProvider,
	baskets ports.BasketProvider,
	payments ports.PaymentGateway,
	publisher ports.EventPublisher,
	sagaLog sagalog.Repository,
) *Service {
	return &Service{
		store:     store,
		customers: customers,
		baskets:   baskets,
		payments:  payments,
		publisher: publisher,
		sagaLog:   sagaLog,
	}
}

// CreateOrder runs the order-creation saga for the authenticated customer.
//
// The saga validates the customer and basket, persists a PENDING_PAYMENT
// order with its lines, charges the gateway, and finalizes the order to
// PROCESSING. A payment failure flips the persisted order to PAYMENT_FAILED
// (the failed record survives) and surfaces a PaymentProcessingError.
//
// Events are published after the saga commits. A publish failure propagates
// to the caller but never rolls back the PROCESSING status: downstream
// consumers may miss a paid order, which the saga log makes detectable.
func (s *Service) CreateOrder(ctx context.Context, req ports.CreateOrderRequest, customerID string) (*entity.OrderSummary, error) {
	state := &coordinator.OrderCreation{
		CustomerID: customerID,
		Request:    req,
	}

	steps := []coordinator.Step{
		coordinator.NewValidateCustomerStep(s.customers, state),
		coordinator.NewValidateBasketStep(s.baskets, state),
		coordinator.NewComputeTotalStep(s.baskets, state),
		coordinator.NewPersistOrderStep(s.store, state),
		coordinator.NewChargePaymentStep(s.payments, state),
		coordinator.NewFinalizeOrderStep(s.store, state),
	}

	// The order reference is the saga id so the audit log joins with
	// business data.
	saga := coordinator.NewOrchestrator(req.Reference, sagaPayload(req, customerID), steps, s.sagaLog)
	if err := saga.Start(ctx); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "order committed, publishing events",
		"order_id", state.Order.ID, "reference", state.Order.Reference, "total", state.Total)

	if err := s.publishOrderEvents(ctx, state); err != nil {
		return nil, err
	}

	return &entity.OrderSummary{
		ID:        state.Order.ID,
		Reference: state.Order.Reference,
	}, nil
}

// GetAllOrders is a pass-through query against the order store.
func (s *Service) GetAllOrders(ctx context.Context) ([]entity.Order, error) {
	return s.store.List(ctx)
}

// GetOrderByID returns the order or an OrderNotFoundError.
func (s *Service) GetOrderByID(ctx context.Context, orderID string) (*entity.Order, error) {
	return s.store.GetByID(ctx, orderID)
}

// publishOrderEvents emits the OrderCreated (search indexing) and
// OrderReceived (notification) events for an order that just reached
// PROCESSING. Failures here happen after the commit point.
func (s *Service) publishOrderEvents(ctx context.Context, state *coordinator.OrderCreation) error {
	created, err := buildOrderCreatedEvent(state.Order, state.Profile, state.Basket.Items)
	if err != nil {
		return err
	}

	if err := s.publisher.PublishOrderCreated(ctx, created); err != nil {
		return fmt.Errorf("publish order created event: %w", err)
	}

	received := buildOrderReceivedEvent(state.Order, state.Profile, state.Basket.Items)
	if err := s.publisher.PublishOrderReceived(ctx, received); err != nil {
		return fmt.Errorf("publish order received event: %w", err)
	}

	return nil
}

// buildOrderCreatedEvent assembles the denormalized snapshot for the search
// indexer. Resolving the active addresses can still fail here, after the
// order committed with PROCESSING status; the error mapping keeps that
// behavior from the source system.
func buildOrderCreatedEvent(order *entity.Order, customer *entity.CustomerProfile, items []entity.BasketItem) (*entity.OrderCreatedEvent, error) {
	shipping, err := findActiveAddress(customer.ShippingAddresses, customer.ActiveShippingAddressID, "shipping")
	if err != nil {
		return nil, err
	}

	billing, err := findActiveAddress(customer.BillingAddresses, customer.ActiveBillingAddressID, "billing")
	if err != nil {
		return nil, err
	}

	return &entity.OrderCreatedEvent{
		OrderID:       order.ID,
		Reference:     order.Reference,
		OrderDate:     order.CreatedDate,
		Status:        string(order.Status),
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		Customer: entity.CustomerInfo{
			ID:       customer.ID,
			FullName: customer.FullName(),
			Email:    customer.Email,
		},
		ShippingAddress: toAddressInfo(shipping),
		BillingAddress:  toAddressInfo(billing),
		Items:           toItemInfos(items),
	}, nil
}

func buildOrderReceivedEvent(order *entity.Order, customer *entity.CustomerProfile, items []entity.BasketItem) *entity.OrderReceivedEvent {
	return &entity.OrderReceivedEvent{
		CustomerName:  customer.FullName(),
		CustomerEmail: customer.Email,
		Reference:     order.Reference,
		PaymentMethod: order.PaymentMethod,
		Items:         toItemInfos(items),
		TotalAmount:   order.TotalAmount,
	}
}

// findActiveAddress locates the address whose id equals the customer's
// recorded active-address id for the given kind ("shipping" or "billing").
func findActiveAddress(addresses []entity.Address, activeID, kind string) (*entity.Address, error) {
	if len(addresses) == 0 || activeID == "" {
		return nil, &errs.InvalidOrderRequestError{
			Reason: fmt.Sprintf("customer has no active %s address configured", kind),
		}
	}

	for i := range addresses {
		if addresses[i].ID == activeID {
			return &addresses[i], nil
		}
	}

	return nil, &errs.InvalidOrderRequestError{
		Reason: fmt.Sprintf("active %s address (ID: %s) not found in customer profile", kind, activeID),
	}
}

func toAddressInfo(a *entity.Address) entity.AddressInfo {
	return entity.AddressInfo{
		ContactName: a.ContactName,
		City:        a.City,
		Country:     a.Country,
		Address:     a.AddressLine,
		ZipCode:     a.ZipCode,
	}
}

func toItemInfos(items []entity.BasketItem) []entity.ItemInfo {
	out := make([]entity.ItemInfo, 0, len(items))
	for _, item := range items {
		out = append(out, entity.ItemInfo{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Manufacturer: item.Manufacturer,
			CategoryID:   item.CategoryID,
			Quantity:     item.Quantity,
			BasePrice:    item.BasePrice,
		})
	}
	return out
}

// sagaPayload serializes the saga input for the STARTED log row so a saga
// can be replayed from the log alone.
func sagaPayload(req ports.CreateOrderRequest, customerID string) string {
	b, err := json.Marshal(map[string]string{
		"reference":     req.Reference,
		"paymentMethod": req.PaymentMethod,
		"customerId":    customerID,
	})
	if err != nil {
		return ""
	}
	return string(b)
}
