package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/payments", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "c-1", body["customerId"])

		_, _ = w.Write([]byte(`{"status": "SUCCESS", "paymentId": "pay-1", "paidAmount": 150.00}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	result, err := client.Charge(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "SUCCESS", result.Status)
	assert.Equal(t, "pay-1", result.PaymentID)
}

func TestChargeDeclineCarriesProviderMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"status": "FAILURE", "errorMessage": "card expired"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	_, err := client.Charge(context.Background(), "c-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card expired")
}

func TestChargeDeclineWithOKStatus(t *testing.T) {
	// Some providers answer 200 with a FAILURE body; the result carries the
	// decline, and the charge step turns it into a PaymentProcessingError.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "FAILURE", "errorMessage": "limit exceeded"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	result, err := client.Charge(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "FAILURE", result.Status)
	assert.Equal(t, "limit exceeded", result.ErrorMessage)
}

func TestChargeUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil)

	_, err := client.Charge(context.Background(), "c-1")
	require.Error(t, err)
}
