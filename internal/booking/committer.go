// internal/booking/committer.go
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/calendar"
	"cabinreserve/internal/hold"
	"cabinreserve/internal/models"
	"cabinreserve/internal/pricing"
	"cabinreserve/internal/repositories/interfaces"
)

// CommitRequest carries everything needed to turn a quote into a confirmed
// booking. CheckIn/CheckOut are business-timezone wall-clock dates.
type CommitRequest struct {
	CabinIdentifier string
	CheckIn         time.Time
	CheckOut        time.Time
	Adults          int
	Kids            int

	HoldID *uuid.UUID

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string

	Addons             []pricing.Addon
	TotalPriceOverride *decimal.Decimal
	ApplyDiscounts     bool
	CreatePayment      bool
}

// CommitResult is returned on a successful commit. Warning is set when the
// payment intent could not be created or recorded; hold-conversion and email
// failures are only logged.
type CommitResult struct {
	Booking *models.Booking
	Warning string
}

// Committer implements the booking commit path: fail-fast preconditions
// followed by an ordered sequence of durable steps with best-effort
// compensation.
type Committer struct {
	Cabins        interfaces.CabinRepositoryInterface
	Customers     interfaces.CustomerRepositoryInterface
	Bookings      interfaces.BookingRepositoryInterface
	Transactions  interfaces.TransactionRepositoryInterface
	Audit         interfaces.AuditRepositoryInterface
	Holds         *hold.Manager
	Calendar      calendar.Gateway
	Pricing       *pricing.Engine
	Payment       PaymentGateway
	Notifier      Notifier
	BusinessTZ    *time.Location
}

func NewCommitter(
	cabins interfaces.CabinRepositoryInterface,
	customers interfaces.CustomerRepositoryInterface,
	bookings interfaces.BookingRepositoryInterface,
	transactions interfaces.TransactionRepositoryInterface,
	audit interfaces.AuditRepositoryInterface,
	holds *hold.Manager,
	cal calendar.Gateway,
	pricingEngine *pricing.Engine,
	payment PaymentGateway,
	notifier Notifier,
	businessTZ *time.Location,
) *Committer {
	return &Committer{
		Cabins:       cabins,
		Customers:    customers,
		Bookings:     bookings,
		Transactions: transactions,
		Audit:        audit,
		Holds:        holds,
		Calendar:     cal,
		Pricing:      pricingEngine,
		Payment:      payment,
		Notifier:     notifier,
		BusinessTZ:   businessTZ,
	}
}

// resolveCabin tries external identifiers in the order the spec prescribes:
// short code, then id, then name, then a trailing match on calendarRef.
func (c *Committer) resolveCabin(ctx context.Context, identifier string) (*models.Cabin, error) {
	return ResolveCabin(ctx, c.Cabins, identifier)
}

// ResolveCabin tries external identifiers in the order the spec prescribes:
// short code, then id, then name, then a trailing match on calendarRef. It is
// exported so HTTP handlers can resolve the same "cabin" path/query
// parameter outside the commit path (quoting, holds, the cabin calendar).
func ResolveCabin(ctx context.Context, cabins interfaces.CabinRepositoryInterface, identifier string) (*models.Cabin, error) {
	identifier = strings.TrimSpace(identifier)

	if cabin, err := cabins.GetByShortCode(ctx, identifier); err == nil {
		return cabin, nil
	}

	if id, err := uuid.Parse(identifier); err == nil {
		if cabin, err := cabins.GetByID(ctx, id); err == nil {
			return cabin, nil
		}
	}

	if cabin, err := cabins.GetByName(ctx, identifier); err == nil {
		return cabin, nil
	}

	if cabin, err := cabins.GetByCalendarRefSuffix(ctx, identifier); err == nil {
		return cabin, nil
	}

	return nil, apierr.ErrCabinNotFound
}

// Commit enforces preconditions fail-fast, then runs the durable commit
// sequence described in the booking commit design.
func (c *Committer) Commit(ctx context.Context, req CommitRequest) (*CommitResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Precondition 1: resolve cabin.
	cabin, err := c.resolveCabin(ctx, req.CabinIdentifier)
	if err != nil {
		return nil, err
	}

	// Precondition 2: validate date range.
	if !req.CheckOut.After(req.CheckIn) {
		return nil, apierr.InvalidInput(apierr.ErrInvalidDateRange)
	}
	if req.Adults > cabin.MaxAdults || req.Kids > cabin.MaxKids {
		return nil, apierr.InvalidInput(apierr.ErrInvalidGuestCount)
	}

	checkInUTC := req.CheckIn.In(c.BusinessTZ).UTC()
	checkOutUTC := req.CheckOut.In(c.BusinessTZ).UTC()
	cabinExternalID := cabin.ID.String()

	// Precondition 3/4: hold state.
	if req.HoldID != nil {
		h, err := c.Holds.GetHold(ctx, *req.HoldID)
		if err != nil {
			return nil, err
		}
		if h.CabinID != cabinExternalID {
			return nil, apierr.Conflict(apierr.ErrHoldMismatch)
		}
	} else {
		exists, err := c.Holds.CheckHoldExists(ctx, cabinExternalID, checkInUTC.Format("2006-01-02"), checkOutUTC.Format("2006-01-02"))
		if err != nil {
			return nil, fmt.Errorf("checking hold state: %w", err)
		}
		if exists {
			return nil, apierr.Conflict(apierr.ErrCabinOnHold)
		}
	}

	// Precondition 5: calendar availability.
	events, err := c.Calendar.ListEvents(ctx, cabin.CalendarRef, checkInUTC, checkOutUTC)
	if err != nil {
		return nil, err
	}
	var conflicts []calendar.Event
	for _, ev := range events {
		if ev.Overlaps(checkInUTC, checkOutUTC) {
			conflicts = append(conflicts, ev)
			if len(conflicts) >= 3 {
				break
			}
		}
	}
	if len(conflicts) > 0 {
		return nil, apierr.Conflict(fmt.Errorf("%w: %d conflicting event(s)", apierr.ErrCabinBusy, len(conflicts)))
	}

	// Commit step 1: upsert customer.
	customer, err := c.Customers.UpsertByEmailOrPhone(ctx, &models.Customer{
		Name:  req.CustomerName,
		Email: req.CustomerEmail,
		Phone: req.CustomerPhone,
	})
	if err != nil {
		return nil, fmt.Errorf("upserting customer: %w", err)
	}

	// Commit step 2: create external calendar event.
	description := buildEventDescription(cabin, customer, req, checkInUTC, checkOutUTC)
	event, err := c.Calendar.InsertEvent(ctx, cabin.CalendarRef, checkInUTC, checkOutUTC, description)
	if err != nil {
		return nil, fmt.Errorf("creating calendar event: %w", err)
	}
	calendarEventLink := fmt.Sprintf("%s#%s", cabin.CalendarRef, event.Ref)

	// Commit step 3: compute price if not supplied.
	var totalPrice decimal.Decimal
	if req.TotalPriceOverride != nil {
		totalPrice = *req.TotalPriceOverride
	} else {
		priceBreakdown := c.Pricing.CalculateBreakdown(cabin, checkInUTC, checkOutUTC, req.Addons, req.ApplyDiscounts)
		totalPrice = priceBreakdown.Total
	}

	// Commit step 4: insert booking. Compensate the calendar event on failure.
	bookingRecord := &models.Booking{
		CabinID:           cabin.ID,
		CustomerID:        &customer.ID,
		CheckInDate:       checkInUTC,
		CheckOutDate:      checkOutUTC,
		Adults:            req.Adults,
		Kids:              req.Kids,
		TotalPrice:        totalPrice,
		Status:            models.BookingStatusConfirmed,
		CalendarEventRef:  event.Ref,
		CalendarEventLink: calendarEventLink,
	}

	if err := c.Bookings.Create(ctx, bookingRecord); err != nil {
		if delErr := c.Calendar.DeleteEvent(ctx, cabin.CalendarRef, event.Ref); delErr != nil {
			slog.Error("failed to compensate orphaned calendar event", "calendar_ref", cabin.CalendarRef, "event_ref", event.Ref, "error", delErr)
		}
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	result := &CommitResult{Booking: bookingRecord}

	// Commit step 5: optional payment intent. Never fails the commit.
	if req.CreatePayment && totalPrice.GreaterThan(decimal.Zero) {
		intent, err := c.Payment.CreatePaymentIntent(ctx, bookingRecord.ID.String(), totalPrice, "ILS")
		if err != nil {
			slog.Warn("payment intent creation failed, booking stays unpaid", "booking_id", bookingRecord.ID, "error", err)
			result.Warning = "payment could not be initiated; booking was created without a pending transaction"
		} else {
			transaction := &models.Transaction{
				BookingID:  bookingRecord.ID,
				PaymentRef: intent.PaymentRef,
				Amount:     totalPrice,
				Currency:   "ILS",
				Status:     models.TransactionPending,
			}
			if err := c.Transactions.Create(ctx, transaction); err != nil {
				slog.Warn("failed to record pending transaction", "booking_id", bookingRecord.ID, "error", err)
				result.Warning = "payment was initiated but could not be recorded; contact support with your booking id"
			}
		}
	}

	// Commit step 6: audit trail.
	if err := c.appendAudit(ctx, bookingRecord); err != nil {
		slog.Warn("failed to write audit entry for booking", "booking_id", bookingRecord.ID, "error", err)
	}

	// Commit step 7: convert the hold, if one was used. Non-fatal.
	if req.HoldID != nil {
		if err := c.Holds.ConvertHoldToBooking(ctx, *req.HoldID, bookingRecord.ID); err != nil {
			slog.Warn("failed to convert hold to booking, it will expire naturally", "hold_id", *req.HoldID, "error", err)
		}
	}

	// Commit step 8: best-effort confirmation email.
	if err := c.Notifier.SendBookingConfirmation(ctx, bookingRecord.ID.String()); err != nil {
		slog.Warn("failed to dispatch booking confirmation email", "booking_id", bookingRecord.ID, "error", err)
	}

	return result, nil
}

func buildEventDescription(cabin *models.Cabin, customer *models.Customer, req CommitRequest, checkIn, checkOut time.Time) string {
	lines := []string{
		fmt.Sprintf("cabin: %s", cabin.ShortCode),
		fmt.Sprintf("customer: %s", customer.Name),
		fmt.Sprintf("phone: %s", customer.Phone),
		fmt.Sprintf("check_in: %s", checkIn.Format(time.RFC3339)),
		fmt.Sprintf("check_out: %s", checkOut.Format(time.RFC3339)),
	}
	if req.Notes != "" {
		lines = append(lines, fmt.Sprintf("notes: %s", req.Notes))
	}
	return strings.Join(lines, "\n")
}

// Cancel marks a booking cancelled, writes an audit entry, and best-effort
// deletes the calendar event. It never issues a refund.
func (c *Committer) Cancel(ctx context.Context, bookingID uuid.UUID) error {
	bookingRecord, err := c.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return apierr.ErrBookingNotFound
	}

	if err := c.Bookings.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled); err != nil {
		return fmt.Errorf("cancelling booking: %w", err)
	}

	if bookingRecord.CalendarEventRef != "" {
		if err := c.Calendar.DeleteEvent(ctx, bookingRecord.Cabin.CalendarRef, bookingRecord.CalendarEventRef); err != nil {
			slog.Warn("failed to delete calendar event for cancelled booking", "booking_id", bookingID, "error", err)
		}
	}

	bookingRecord.Status = models.BookingStatusCancelled
	if err := c.appendAudit(ctx, bookingRecord); err != nil {
		slog.Warn("failed to write audit entry for cancellation", "booking_id", bookingID, "error", err)
	}

	return nil
}

func (c *Committer) appendAudit(ctx context.Context, bookingRecord *models.Booking) error {
	payload := map[string]interface{}{
		"id":           bookingRecord.ID,
		"cabin_id":     bookingRecord.CabinID,
		"status":       bookingRecord.Status,
		"total_price":  bookingRecord.TotalPrice.String(),
		"check_in":     bookingRecord.CheckInDate,
		"check_out":    bookingRecord.CheckOutDate,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	action := models.AuditActionInsert
	if bookingRecord.Status == models.BookingStatusCancelled {
		action = models.AuditActionUpdate
	}

	entry := &models.AuditEntry{
		TableName_: "bookings",
		RecordID:   bookingRecord.ID.String(),
		Action:     action,
		NewValues:  raw,
	}
	return c.Audit.Append(ctx, entry)
}

// ReconcilePaymentWebhook matches a gateway confirmation event to a
// transaction by payment reference and updates its status. On success a
// receipt email is dispatched; the booking itself is never altered here.
func (c *Committer) ReconcilePaymentWebhook(ctx context.Context, paymentRef string, succeeded bool) error {
	transaction, err := c.Transactions.GetByPaymentRef(ctx, paymentRef)
	if err != nil {
		return fmt.Errorf("looking up transaction by payment ref: %w", err)
	}

	status := models.TransactionFailed
	if succeeded {
		status = models.TransactionCompleted
	}

	if transaction.Status == status {
		// Duplicate delivery of an event already applied: no-op, no re-sent email.
		return nil
	}

	if err := c.Transactions.UpdateStatus(ctx, transaction.ID, status); err != nil {
		return fmt.Errorf("updating transaction status: %w", err)
	}

	if succeeded {
		if err := c.Notifier.SendPaymentReceipt(ctx, transaction.ID.String()); err != nil {
			slog.Warn("failed to dispatch payment receipt", "transaction_id", transaction.ID, "error", err)
		}
	}

	return nil
}
