package entity

import "github.com/shopspring/decimal"

// PaymentResult is the payment gateway's answer to a charge attempt.
// Opaque to the orchestrator beyond success/failure and the provider message.
type PaymentResult struct {
	Status       string          `json:"status"`
	PaymentID    string          `json:"paymentId"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
}

// PaymentStatusSuccess is the status value the gateway reports on a
// successful charge. Anything else is treated as a decline.
const PaymentStatusSuccess = "SUCCESS"
