// internal/email/smtp_notifier.go
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"

	"cabinreserve/internal/repositories/interfaces"
)

// SMTPNotifier implements booking.Notifier by composing plain-text mail and
// sending it through a configured SMTP relay. A failed send is logged by the
// caller and never blocks a booking commit.
type SMTPNotifier struct {
	Host         string
	Port         string
	User         string
	Password     string
	From         string
	Bookings     interfaces.BookingRepositoryInterface
	Transactions interfaces.TransactionRepositoryInterface
}

func NewSMTPNotifier(host, port, user, password, from string, bookings interfaces.BookingRepositoryInterface, transactions interfaces.TransactionRepositoryInterface) *SMTPNotifier {
	return &SMTPNotifier{
		Host:         host,
		Port:         port,
		User:         user,
		Password:     password,
		From:         from,
		Bookings:     bookings,
		Transactions: transactions,
	}
}

func (n *SMTPNotifier) SendBookingConfirmation(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("parsing booking id: %w", err)
	}
	booking, err := n.Bookings.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("loading booking: %w", err)
	}
	if booking.Customer == nil || booking.Customer.Email == "" {
		return nil
	}

	subject := "Your reservation is confirmed"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour stay at %s is confirmed.\n\nCheck-in:  %s\nCheck-out: %s\nTotal:     %s %s\n\nWe look forward to hosting you.\n",
		booking.Customer.Name,
		booking.Cabin.Name,
		booking.CheckInDate.Format("2006-01-02"),
		booking.CheckOutDate.Format("2006-01-02"),
		booking.TotalPrice.StringFixed(2),
		"ILS",
	)

	return n.send(booking.Customer.Email, subject, body)
}

func (n *SMTPNotifier) SendPaymentReceipt(ctx context.Context, transactionID string) error {
	id, err := uuid.Parse(transactionID)
	if err != nil {
		return fmt.Errorf("parsing transaction id: %w", err)
	}
	transaction, err := n.Transactions.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("loading transaction: %w", err)
	}
	booking, err := n.Bookings.GetByID(ctx, transaction.BookingID)
	if err != nil {
		return fmt.Errorf("loading booking: %w", err)
	}
	if booking.Customer == nil || booking.Customer.Email == "" {
		return nil
	}

	subject := "Payment receipt"
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your payment of %s %s for booking %s.\n\nReference: %s\n",
		booking.Customer.Name,
		transaction.Amount.StringFixed(2),
		transaction.Currency,
		booking.ID,
		transaction.PaymentRef,
	)

	return n.send(booking.Customer.Email, subject, body)
}

func (n *SMTPNotifier) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", n.Host, n.Port)
	msg := strings.Join([]string{
		"From: " + n.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if n.User != "" {
		auth = smtp.PlainAuth("", n.User, n.Password, n.Host)
	}

	return smtp.SendMail(addr, auth, n.From, []string{to}, []byte(msg))
}
