package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabinreserve/internal/apierr"
)

func TestHTTPPaymentGateway_CreatePaymentIntent_ConvertsToMinorUnits(t *testing.T) {
	var gotAmount int64
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotAmount = int64(body["amount"].(float64))

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(wirePaymentIntent{ID: "pi_123", ClientSecret: "secret_abc"})
	}))
	defer srv.Close()

	gw := NewHTTPPaymentGateway(srv.URL, "sk_test_key")
	intent, err := gw.CreatePaymentIntent(context.Background(), "booking-1", decimal.NewFromFloat(129.9), "ILS")
	require.NoError(t, err)

	assert.Equal(t, int64(12990), gotAmount)
	assert.Equal(t, "Bearer sk_test_key", gotAuth)
	assert.Equal(t, "pi_123", intent.PaymentRef)
	assert.Equal(t, "secret_abc", intent.ClientSecret)
}

func TestHTTPPaymentGateway_CreatePaymentIntent_ServerErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := NewHTTPPaymentGateway(srv.URL, "sk_test_key")
	_, err := gw.CreatePaymentIntent(context.Background(), "booking-1", decimal.NewFromInt(100), "ILS")

	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrPaymentGatewayUnavailable)
}

func TestHTTPPaymentGateway_CreatePaymentIntent_ClientErrorIsNotUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid currency"}`))
	}))
	defer srv.Close()

	gw := NewHTTPPaymentGateway(srv.URL, "sk_test_key")
	_, err := gw.CreatePaymentIntent(context.Background(), "booking-1", decimal.NewFromInt(100), "XYZ")

	require.Error(t, err)
	assert.NotErrorIs(t, err, apierr.ErrPaymentGatewayUnavailable)
}
