// internal/booking/email.go
package booking

import "context"

// Notifier dispatches best-effort customer notifications. A failure here
// never fails a booking commit or cancellation — callers log and continue.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, bookingID string) error
	SendPaymentReceipt(ctx context.Context, transactionID string) error
}

// NoopNotifier is used wherever SMTP configuration is absent; it discards
// every notification silently.
type NoopNotifier struct{}

func (NoopNotifier) SendBookingConfirmation(ctx context.Context, bookingID string) error { return nil }
func (NoopNotifier) SendPaymentReceipt(ctx context.Context, transactionID string) error   { return nil }
