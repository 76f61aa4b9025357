package httpx

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	Reference     string `json:"reference"`
	PaymentMethod string `json:"paymentMethod"`
}

type OrderSummaryResponse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
}

type OrderResponse struct {
	ID            string          `json:"id"`
	Reference     string          `json:"reference"`
	CustomerID    string          `json:"customerId"`
	CustomerEmail string          `json:"customerEmail"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	CreatedDate   time.Time       `json:"createdDate"`
}

// ProblemResponse is the error body, shaped after RFC 7807 problem details.
type ProblemResponse struct {
	Title     string    `json:"title"`
	Status    int       `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
