package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
//
// An order is created in PENDING_PAYMENT. A successful charge moves it to
// PROCESSING; a declined or failed charge moves it to PAYMENT_FAILED. Both
// are terminal for this service — cancellation and refund flows live
// elsewhere.
type OrderStatus string

const (
	StatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	StatusProcessing     OrderStatus = "PROCESSING"
	StatusPaymentFailed  OrderStatus = "PAYMENT_FAILED"
)

// Order is the persistent order record. It is owned by the order store and
// mutated only through status transitions.
type Order struct {
	ID            string
	Reference     string // client-supplied, not guaranteed unique
	CustomerID    string
	CustomerEmail string
	TotalAmount   decimal.Decimal
	PaymentMethod string
	Status        OrderStatus
	CreatedDate   time.Time
}

// OrderLine is a snapshot of one basket item at order time. Written once,
// immutable afterwards, so later basket or product changes never affect a
// placed order.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID int
	Quantity  int
}

// OrderSummary is what callers get back from order creation.
type OrderSummary struct {
	ID        string
	Reference string
}
