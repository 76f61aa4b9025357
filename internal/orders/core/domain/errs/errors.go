// Package errs defines the typed errors the order orchestrator can return.
//
// Each collaborator boundary returns one of these instead of leaking its
// transport errors, so the orchestrator and the HTTP layer can switch on the
// error kind with errors.As rather than sniffing strings.
package errs

import "fmt"

// ExternalServiceError means a collaborator (customer or basket service)
// was unreachable or returned an empty response.
type ExternalServiceError struct {
	Service string
	Reason  string
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s service is unavailable or returned empty response: %s", e.Service, e.Reason)
}

// AuthMismatchError means the authenticated customer id does not match the
// fetched profile id. Defends against a forged or stale principal.
type AuthMismatchError struct {
	AuthenticatedID string
	ProfileID       string
}

func (e *AuthMismatchError) Error() string {
	return fmt.Sprintf("authentication mismatch: token customer %q does not match profile %q", e.AuthenticatedID, e.ProfileID)
}

// EmptyBasketError means order creation was attempted with zero basket items.
type EmptyBasketError struct {
	CustomerID string
}

func (e *EmptyBasketError) Error() string {
	return fmt.Sprintf("cannot create an order with an empty basket for customer %s", e.CustomerID)
}

// PaymentProcessingError wraps any payment gateway failure — decline,
// transport error or timeout — carrying the provider's message.
type PaymentProcessingError struct {
	OrderReference string
	Message        string
}

func (e *PaymentProcessingError) Error() string {
	return fmt.Sprintf("payment gateway declined the transaction for order %s: %s", e.OrderReference, e.Message)
}

// InvalidOrderRequestError covers business rule violations in the request or
// the customer profile, such as a missing active address during event
// construction.
type InvalidOrderRequestError struct {
	Reason string
}

func (e *InvalidOrderRequestError) Error() string {
	return e.Reason
}

// OrderNotFoundError is returned by lookups for an unknown order id.
type OrderNotFoundError struct {
	OrderID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order not found with ID: %s", e.OrderID)
}
