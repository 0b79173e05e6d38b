// internal/booking/http_payment_gateway.go
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"cabinreserve/internal/apierr"
)

// HTTPPaymentGateway calls a REST-fronted payment provider (Stripe-shaped:
// amount in minor units, a payment-intent resource, a bearer API key). It
// speaks the provider's REST contract directly over plain net/http, mirroring
// calendar.HTTPGateway's shape rather than pulling in a generated SDK.
type HTTPPaymentGateway struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewHTTPPaymentGateway(baseURL, apiKey string) *HTTPPaymentGateway {
	return &HTTPPaymentGateway{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type wirePaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// CreatePaymentIntent posts an amount in the currency's minor unit (agorot
// for ILS) and returns the provider's reference and client secret.
func (g *HTTPPaymentGateway) CreatePaymentIntent(ctx context.Context, bookingID string, amount decimal.Decimal, currency string) (PaymentIntent, error) {
	minorUnits := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	reqBody := map[string]interface{}{
		"amount":      minorUnits,
		"currency":    currency,
		"description": fmt.Sprintf("booking %s", bookingID),
		"metadata":    map[string]string{"booking_id": bookingID},
	}

	var wire wirePaymentIntent
	if err := g.doJSON(ctx, http.MethodPost, "/payment_intents", bookingID, reqBody, &wire); err != nil {
		return PaymentIntent{}, err
	}

	return PaymentIntent{PaymentRef: wire.ID, ClientSecret: wire.ClientSecret}, nil
}

func (g *HTTPPaymentGateway) doJSON(ctx context.Context, method, path, idempotencyKey string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return apierr.ErrPaymentGatewayUnavailable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierr.ErrPaymentGatewayUnavailable
	}

	if resp.StatusCode >= 500 {
		return apierr.ErrPaymentGatewayUnavailable
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("payment gateway rejected request: %s", string(respBody))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}
