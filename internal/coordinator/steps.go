package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/entity"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/errs"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/ports"
)

// OrderCreation is the state shared by the order-creation steps. Each step
// reads what earlier steps produced and records its own output; execution is
// strictly sequential, so no locking is needed.
type OrderCreation struct {
	CustomerID string
	Request    ports.CreateOrderRequest

	Profile *entity.CustomerProfile
	Basket  *entity.Basket
	Total   decimal.Decimal
	Order   *entity.Order

	// PaymentErr is set when the charge step fails. The persist step's
	// compensation flips the order to PAYMENT_FAILED only when it is set,
	// so a failure after a successful charge never masks the payment
	// outcome.
	PaymentErr error
}

// --- ValidateCustomerStep ---

// ValidateCustomerStep fetches the caller's profile and verifies that the
// authenticated customer id matches it.
type ValidateCustomerStep struct {
	provider ports.CustomerProfileProvider
	state    *OrderCreation
}

func NewValidateCustomerStep(provider ports.CustomerProfileProvider, state *OrderCreation) *ValidateCustomerStep {
	return &ValidateCustomerStep{provider: provider, state: state}
}

func (s *ValidateCustomerStep) Name() string { return "validate-customer" }

func (s *ValidateCustomerStep) Execute(ctx context.Context) error {
	profile, err := s.provider.GetProfile(ctx, s.state.CustomerID)
	if err != nil {
		return asServiceError("customer", err)
	}
	if profile == nil {
		return &errs.ExternalServiceError{Service: "customer", Reason: "empty profile response"}
	}
	if profile.ID != s.state.CustomerID {
		return &errs.AuthMismatchError{
			AuthenticatedID: s.state.CustomerID,
			ProfileID:       profile.ID,
		}
	}
	s.state.Profile = profile
	return nil
}

func (s *ValidateCustomerStep) Compensate(ctx context.Context) error { return nil }

// --- ValidateBasketStep ---

// ValidateBasketStep fetches the current basket and rejects empty ones
// before any persistence or payment happens.
type ValidateBasketStep struct {
	provider ports.BasketProvider
	state    *OrderCreation
}

func NewValidateBasketStep(provider ports.BasketProvider, state *OrderCreation) *ValidateBasketStep {
	return &ValidateBasketStep{provider: provider, state: state}
}

func (s *ValidateBasketStep) Name() string { return "validate-basket" }

func (s *ValidateBasketStep) Execute(ctx context.Context) error {
	basket, err := s.provider.GetBasket(ctx, s.state.CustomerID)
	if err != nil {
		return asServiceError("basket", err)
	}
	if basket == nil {
		return &errs.ExternalServiceError{Service: "basket", Reason: "empty basket response"}
	}
	if len(basket.Items) == 0 {
		return &errs.EmptyBasketError{CustomerID: s.state.CustomerID}
	}
	s.state.Basket = basket
	return nil
}

func (s *ValidateBasketStep) Compensate(ctx context.Context) error { return nil }

// --- ComputeTotalStep ---

// ComputeTotalStep asks the basket service for the authoritative total.
// The total is never recomputed locally, so the order amount cannot drift
// from what the basket service charged into the payment request.
type ComputeTotalStep struct {
	provider ports.BasketProvider
	state    *OrderCreation
}

func NewComputeTotalStep(provider ports.BasketProvider, state *OrderCreation) *ComputeTotalStep {
	return &ComputeTotalStep{provider: provider, state: state}
}

func (s *ComputeTotalStep) Name() string { return "compute-total" }

func (s *ComputeTotalStep) Execute(ctx context.Context) error {
	total, err := s.provider.GetTotalPrice(ctx, s.state.CustomerID)
	if err != nil {
		return asServiceError("basket", err)
	}
	s.state.Total = total
	return nil
}

func (s *ComputeTotalStep) Compensate(ctx context.Context) error { return nil }

// --- PersistOrderStep ---

// PersistOrderStep writes the PENDING_PAYMENT order and one line per basket
// item in a single transaction. This is the commit point before money moves:
// the audit trail exists even if the charge later fails.
type PersistOrderStep struct {
	store ports.OrderStore
	state *OrderCreation
}

func NewPersistOrderStep(store ports.OrderStore, state *OrderCreation) *PersistOrderStep {
	return &PersistOrderStep{store: store, state: state}
}

func (s *PersistOrderStep) Name() string { return "persist-order" }

func (s *PersistOrderStep) Execute(ctx context.Context) error {
	order := &entity.Order{
		ID:            uuid.NewString(),
		Reference:     s.state.Request.Reference,
		CustomerID:    s.state.Profile.ID,
		CustomerEmail: s.state.Profile.Email,
		TotalAmount:   s.state.Total,
		PaymentMethod: s.state.Request.PaymentMethod,
		Status:        entity.StatusPendingPayment,
		CreatedDate:   time.Now().UTC(),
	}

	lines := make([]entity.OrderLine, 0, len(s.state.Basket.Items))
	for _, item := range s.state.Basket.Items {
		lines = append(lines, entity.OrderLine{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	saved, err := s.store.CreateOrder(ctx, order, lines)
	if err != nil {
		return err
	}
	s.state.Order = saved
	return nil
}

// Compensate flips the order to PAYMENT_FAILED, but only when the failure
// that triggered the rollback was a payment failure. The failed-order record
// must survive; the order is never deleted.
func (s *PersistOrderStep) Compensate(ctx context.Context) error {
	if s.state.PaymentErr == nil {
		return nil
	}
	if err := s.store.UpdateStatus(ctx, s.state.Order.ID, entity.StatusPaymentFailed); err != nil {
		return err
	}
	s.state.Order.Status = entity.StatusPaymentFailed
	return nil
}

// --- ChargePaymentStep ---

// ChargePaymentStep invokes the payment gateway for the authenticated
// customer. Any failure (decline, transport error, timeout) is wrapped into
// a PaymentProcessingError carrying the provider's message. No retry is
// attempted here.
type ChargePaymentStep struct {
	gateway ports.PaymentGateway
	state   *OrderCreation
}

func NewChargePaymentStep(gateway ports.PaymentGateway, state *OrderCreation) *ChargePaymentStep {
	return &ChargePaymentStep{gateway: gateway, state: state}
}

func (s *ChargePaymentStep) Name() string { return "charge-payment" }

func (s *ChargePaymentStep) Execute(ctx context.Context) error {
	result, err := s.gateway.Charge(ctx, s.state.CustomerID)
	if err != nil {
		return s.fail(err.Error())
	}
	if result == nil || result.Status != entity.PaymentStatusSuccess {
		msg := "payment declined"
		if result != nil && result.ErrorMessage != "" {
			msg = result.ErrorMessage
		}
		return s.fail(msg)
	}
	return nil
}

func (s *ChargePaymentStep) fail(msg string) error {
	err := &errs.PaymentProcessingError{
		OrderReference: s.state.Order.Reference,
		Message:        msg,
	}
	s.state.PaymentErr = err
	return err
}

func (s *ChargePaymentStep) Compensate(ctx context.Context) error { return nil }

// --- FinalizeOrderStep ---

// FinalizeOrderStep moves the order to PROCESSING after a successful charge.
// A crash between the charge and this write leaves the order stuck at
// PENDING_PAYMENT; the saga log makes that condition visible to
// reconciliation.
type FinalizeOrderStep struct {
	store ports.OrderStore
	state *OrderCreation
}

func NewFinalizeOrderStep(store ports.OrderStore, state *OrderCreation) *FinalizeOrderStep {
	return &FinalizeOrderStep{store: store, state: state}
}

func (s *FinalizeOrderStep) Name() string { return "finalize-order" }

func (s *FinalizeOrderStep) Execute(ctx context.Context) error {
	if err := s.store.UpdateStatus(ctx, s.state.Order.ID, entity.StatusProcessing); err != nil {
		return err
	}
	s.state.Order.Status = entity.StatusProcessing
	return nil
}

func (s *FinalizeOrderStep) Compensate(ctx context.Context) error { return nil }

// asServiceError keeps already-typed collaborator errors intact and wraps
// anything else (a raw transport error from a test fake, say) into the
// service-unavailable kind.
func asServiceError(service string, err error) error {
	var ese *errs.ExternalServiceError
	if errors.As(err, &ese) {
		return err
	}
	return &errs.ExternalServiceError{Service: service, Reason: err.Error()}
}
