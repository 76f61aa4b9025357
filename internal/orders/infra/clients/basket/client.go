// Package basket is the HTTP adapter for the basket service.
package basket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/entity"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/errs"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/ports"
)

// Client fetches basket contents and the authoritative basket total.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.BasketProvider = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// GetBasket returns the customer's current basket.
func (c *Client) GetBasket(ctx context.Context, customerID string) (*entity.Basket, error) {
	var basket entity.Basket
	url := fmt.Sprintf("%s/api/v1/baskets/%s", c.baseURL, customerID)
	if err := c.getJSON(ctx, url, &basket); err != nil {
		return nil, err
	}
	return &basket, nil
}

// totalPriceResponse mirrors the basket service's total endpoint body.
type totalPriceResponse struct {
	CustomerID string          `json:"customerId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// GetTotalPrice returns the total the basket service computed. The order
// service never recomputes it.
func (c *Client) GetTotalPrice(ctx context.Context, customerID string) (decimal.Decimal, error) {
	var body totalPriceResponse
	url := fmt.Sprintf("%s/api/v1/baskets/%s/total", c.baseURL, customerID)
	if err := c.getJSON(ctx, url, &body); err != nil {
		return decimal.Zero, err
	}
	return body.TotalPrice, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &errs.ExternalServiceError{Service: "basket", Reason: err.Error()}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &errs.ExternalServiceError{Service: "basket", Reason: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return &errs.ExternalServiceError{
			Service: "basket",
			Reason:  fmt.Sprintf("unexpected status %d", res.StatusCode),
		}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &errs.ExternalServiceError{Service: "basket", Reason: "malformed response: " + err.Error()}
	}
	return nil
}
