package customer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/errs"
	"github.com/berkeshop/ecommerce-orders/internal/pkg/cache"
)

const profileJSON = `{
	"id": "c-1",
	"name": "Ada",
	"surname": "Lovelace",
	"email": "ada@example.com",
	"shippingAddresses": [{"id": "s-1", "city": "London"}],
	"billingAddresses": [{"id": "b-1", "city": "London"}],
	"activeShippingAddressId": "s-1",
	"activeBillingAddressId": "b-1"
}`

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/customers/c-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(profileJSON))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), nil)

	profile, err := client.GetProfile(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", profile.ID)
	assert.Equal(t, "Ada Lovelace", profile.FullName())
	assert.Equal(t, "s-1", profile.ActiveShippingAddressID)
}

func TestGetProfileUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(profileJSON))
	}))
	defer srv.Close()

	redis := miniredis.RunT(t)
	client := NewClient(srv.URL, srv.Client(), cache.NewRedisCache(redis.Addr(), "orders"))

	_, err := client.GetProfile(context.Background(), "c-1")
	require.NoError(t, err)
	profile, err := client.GetProfile(context.Background(), "c-1")
	require.NoError(t, err)

	assert.Equal(t, "c-1", profile.ID)
	assert.Equal(t, 1, hits, "second lookup must be served from the cache")
}

func TestGetProfileServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), nil)

	_, err := client.GetProfile(context.Background(), "c-1")
	var svcErr *errs.ExternalServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "customer", svcErr.Service)
}

func TestGetProfileUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil, nil)

	_, err := client.GetProfile(context.Background(), "c-1")
	var svcErr *errs.ExternalServiceError
	require.ErrorAs(t, err, &svcErr)
}

func TestGetProfileEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), nil)

	_, err := client.GetProfile(context.Background(), "c-1")
	var svcErr *errs.ExternalServiceError
	require.ErrorAs(t, err, &svcErr)
}
