// Package customer is the HTTP adapter for the customer service.
//
// Transport failures, non-200 answers and empty bodies all surface as
// *errs.ExternalServiceError, so the orchestrator switches on the error
// kind instead of sniffing HTTP details.
package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/entity"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/errs"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/ports"
	"github.com/berkeshop/ecommerce-orders/internal/pkg/cache"
)

const profileCacheTTL = 30 * time.Second

// Client fetches customer profiles over HTTP, with a short-lived Redis
// cache in front. The cache may be nil; lookups then always hit the service.
type Client struct {
	baseURL string
	http    *http.Client
	cache   cache.Cache
}

var _ ports.CustomerProfileProvider = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client, c cache.Cache) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		cache:   c,
	}
}

// GetProfile fetches the profile of the given customer.
func (c *Client) GetProfile(ctx context.Context, customerID string) (*entity.CustomerProfile, error) {
	if profile := c.cachedProfile(ctx, customerID); profile != nil {
		return profile, nil
	}

	url := fmt.Sprintf("%s/api/v1/customers/%s", c.baseURL, customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: "customer", Reason: err.Error()}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: "customer", Reason: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &errs.ExternalServiceError{
			Service: "customer",
			Reason:  fmt.Sprintf("unexpected status %d", res.StatusCode),
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil || len(body) == 0 {
		return nil, &errs.ExternalServiceError{Service: "customer", Reason: "empty response body"}
	}

	var profile entity.CustomerProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, &errs.ExternalServiceError{Service: "customer", Reason: "malformed response: " + err.Error()}
	}

	c.storeProfile(ctx, customerID, body)
	return &profile, nil
}

func (c *Client) cachedProfile(ctx context.Context, customerID string) *entity.CustomerProfile {
	if c.cache == nil {
		return nil
	}

	raw, err := c.cache.Get(ctx, c.cache.GenerateKey("customer-profile", customerID))
	if err != nil || raw == "" {
		return nil
	}

	var profile entity.CustomerProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil
	}
	return &profile
}

// storeProfile caches the raw response. Cache failures are logged and
// ignored; the profile was already fetched.
func (c *Client) storeProfile(ctx context.Context, customerID string, body []byte) {
	if c.cache == nil {
		return
	}
	key := c.cache.GenerateKey("customer-profile", customerID)
	if err := c.cache.Set(ctx, key, string(body), profileCacheTTL); err != nil {
		slog.WarnContext(ctx, "failed to cache customer profile", "customer_id", customerID, "error", err)
	}
}
