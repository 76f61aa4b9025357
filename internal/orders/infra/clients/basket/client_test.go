package basket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/errs"
)

func TestGetBasket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/baskets/c-1", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"customerId": "c-1",
			"items": [
				{"productId": 10, "productName": "Keyboard", "manufacturer": "Clack", "categoryId": 3, "basePrice": 50, "quantity": 1},
				{"productId": 11, "productName": "Mouse", "manufacturer": "Clack", "categoryId": 3, "basePrice": 50, "quantity": 2}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	basket, err := client.GetBasket(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, basket.Items, 2)
	assert.Equal(t, 10, basket.Items[0].ProductID)
	assert.True(t, basket.Items[0].BasePrice.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 2, basket.Items[1].Quantity)
}

func TestGetTotalPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/baskets/c-1/total", r.URL.Path)
		_, _ = w.Write([]byte(`{"customerId": "c-1", "totalPrice": 150.00}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	total, err := client.GetTotalPrice(context.Background(), "c-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("150.00")), "got %s", total)
}

func TestGetBasketNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	_, err := client.GetBasket(context.Background(), "c-1")
	var svcErr *errs.ExternalServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "basket", svcErr.Service)
}

func TestGetTotalPriceMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	_, err := client.GetTotalPrice(context.Background(), "c-1")
	var svcErr *errs.ExternalServiceError
	require.ErrorAs(t, err, &svcErr)
}
