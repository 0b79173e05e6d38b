// internal/booking/payment.go
package booking

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentIntent is the subset of a payment gateway's intent response the
// commit path needs to persist.
type PaymentIntent struct {
	PaymentRef   string
	ClientSecret string
}

// PaymentGateway abstracts the external payment provider. CreatePaymentIntent
// must be idempotent per bookingID so retried commits don't double-charge.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, bookingID string, amount decimal.Decimal, currency string) (PaymentIntent, error)
}
