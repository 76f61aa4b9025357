// Package payment is the HTTP adapter for the payment service.
//
// Unlike the customer/basket adapters, this one returns raw errors: the
// charge step wraps everything (transport error, decline, timeout) into a
// PaymentProcessingError carrying the provider's message, so the failure
// reason reaches the caller verbatim.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/entity"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/ports"
)

// Client charges the customer's registered payment instrument.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.PaymentGateway = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

type chargeRequest struct {
	CustomerID string `json:"customerId"`
}

// Charge asks the payment service to charge the customer. The payment
// service resolves the card and amount from its own view of the basket.
func (c *Client) Charge(ctx context.Context, customerID string) (*entity.PaymentResult, error) {
	payload, err := json.Marshal(chargeRequest{CustomerID: customerID})
	if err != nil {
		return nil, fmt.Errorf("encode charge request: %w", err)
	}

	url := c.baseURL + "/api/v1/payments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var result entity.PaymentResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("malformed payment response (status %d): %w", res.StatusCode, err)
	}

	if res.StatusCode != http.StatusOK {
		if result.ErrorMessage != "" {
			return nil, fmt.Errorf("payment service status %d: %s", res.StatusCode, result.ErrorMessage)
		}
		return nil, fmt.Errorf("payment service status %d", res.StatusCode)
	}

	return &result, nil
}
