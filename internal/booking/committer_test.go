package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/calendar"
	"cabinreserve/internal/hold"
	"cabinreserve/internal/models"
	"cabinreserve/internal/pricing"
)

type memCabinRepo struct{ cabins []*models.Cabin }

func (r *memCabinRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Cabin, error) {
	for _, c := range r.cabins {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}
func (r *memCabinRepo) GetByShortCode(ctx context.Context, code string) (*models.Cabin, error) {
	for _, c := range r.cabins {
		if c.ShortCode == code {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}
func (r *memCabinRepo) GetByName(ctx context.Context, name string) (*models.Cabin, error) {
	for _, c := range r.cabins {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}
func (r *memCabinRepo) GetByCalendarRefSuffix(ctx context.Context, suffix string) (*models.Cabin, error) {
	return nil, errors.New("not found")
}
func (r *memCabinRepo) List(ctx context.Context) ([]*models.Cabin, error) { return r.cabins, nil }

type memCustomerRepo struct {
	mu        sync.Mutex
	customers []*models.Customer
}

func (r *memCustomerRepo) UpsertByEmailOrPhone(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if customer.Email != "" && c.Email == customer.Email {
			return c, nil
		}
	}
	customer.ID = uuid.New()
	r.customers = append(r.customers, customer)
	return customer, nil
}
func (r *memCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[uuid.UUID]*models.Booking)}
}
func (r *memBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = uuid.New()
	r.bookings[b.ID] = b
	return nil
}
func (r *memBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}
func (r *memBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
	return nil
}
func (r *memBookingRepo) ListActiveForCabin(ctx context.Context, cabinID uuid.UUID) ([]*models.Booking, error) {
	return nil, nil
}
func (r *memBookingRepo) ListAll(ctx context.Context, statusFilter string) ([]*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if statusFilter != "" && string(b.Status) != statusFilter {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type memTransactionRepo struct {
	mu           sync.Mutex
	transactions []*models.Transaction
}

func (r *memTransactionRepo) Create(ctx context.Context, t *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = uuid.New()
	r.transactions = append(r.transactions, t)
	return nil
}
func (r *memTransactionRepo) GetByPaymentRef(ctx context.Context, ref string) (*models.Transaction, error) {
	for _, t := range r.transactions {
		if t.PaymentRef == ref {
			return t, nil
		}
	}
	return nil, errors.New("not found")
}
func (r *memTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	for _, t := range r.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.New("not found")
}
func (r *memTransactionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TransactionStatus) error {
	for _, t := range r.transactions {
		if t.ID == id {
			t.Status = status
		}
	}
	return nil
}

type memAuditRepo struct {
	mu      sync.Mutex
	entries []*models.AuditEntry
}

func (r *memAuditRepo) Append(ctx context.Context, entry *models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}
func (r *memAuditRepo) List(ctx context.Context, tableName, recordID string, limit int) ([]*models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.AuditEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if tableName != "" && e.TableName != tableName {
			continue
		}
		if recordID != "" && e.RecordID != recordID {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fakePaymentGateway struct{ fail bool }

func (g *fakePaymentGateway) CreatePaymentIntent(ctx context.Context, bookingID string, amount decimal.Decimal, currency string) (PaymentIntent, error) {
	if g.fail {
		return PaymentIntent{}, errors.New("gateway down")
	}
	return PaymentIntent{PaymentRef: "pay_" + bookingID, ClientSecret: "secret"}, nil
}

func newTestCommitter(t *testing.T, cabin *models.Cabin) (*Committer, *memBookingRepo) {
	t.Helper()
	bookings := newMemBookingRepo()
	committer := NewCommitter(
		&memCabinRepo{cabins: []*models.Cabin{cabin}},
		&memCustomerRepo{},
		bookings,
		&memTransactionRepo{},
		&memAuditRepo{},
		hold.NewManager(nil, 900),
		calendar.NewFakeGateway(),
		pricing.NewEngine(nil, nil, nil),
		&fakePaymentGateway{},
		NoopNotifier{},
		time.UTC,
	)
	return committer, bookings
}

func TestCommitter_Commit_HappyPath(t *testing.T) {
	cabin := &models.Cabin{
		ID:                   uuid.New(),
		ShortCode:            "ZB01",
		Name:                 "Cabin One",
		MaxAdults:            4,
		MaxKids:              2,
		BasePricePerNight:    decimal.RequireFromString("500"),
		WeekendPricePerNight: decimal.RequireFromString("650"),
		CalendarRef:          "calendar-zb01",
	}
	committer, _ := newTestCommitter(t, cabin)

	req := CommitRequest{
		CabinIdentifier: "ZB01",
		CheckIn:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:        time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC),
		Adults:          2,
		CustomerName:    "Dana Cohen",
		CustomerEmail:   "dana@example.com",
		CreatePayment:   true,
	}

	result, err := committer.Commit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, result.Booking.Status)
	assert.NotEmpty(t, result.Booking.CalendarEventRef)
	assert.True(t, result.Booking.TotalPrice.GreaterThan(decimal.Zero))
}

func TestCommitter_Commit_CabinNotFound(t *testing.T) {
	cabin := &models.Cabin{ID: uuid.New(), ShortCode: "ZB02", CalendarRef: "cal"}
	committer, _ := newTestCommitter(t, cabin)

	req := CommitRequest{
		CabinIdentifier: "does-not-exist",
		CheckIn:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:        time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
	}

	_, err := committer.Commit(context.Background(), req)
	assert.ErrorIs(t, err, apierr.ErrCabinNotFound)
}

func TestCommitter_Commit_InvalidDateRange(t *testing.T) {
	cabin := &models.Cabin{ID: uuid.New(), ShortCode: "ZB03", CalendarRef: "cal", MaxAdults: 4}
	committer, _ := newTestCommitter(t, cabin)

	req := CommitRequest{
		CabinIdentifier: "ZB03",
		CheckIn:         time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC),
		CheckOut:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := committer.Commit(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrInvalidDateRange)
}

func TestCommitter_Commit_CabinOnHoldByAnotherRequest(t *testing.T) {
	cabin := &models.Cabin{ID: uuid.New(), ShortCode: "ZB04", CalendarRef: "cal", MaxAdults: 4}
	committer, _ := newTestCommitter(t, cabin)

	checkIn := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	_, err := committer.Holds.CreateHold(context.Background(), cabin.ID.String(), checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"), nil, "someone else")
	require.NoError(t, err)

	req := CommitRequest{
		CabinIdentifier: "ZB04",
		CheckIn:         checkIn,
		CheckOut:        checkOut,
	}

	_, err = committer.Commit(context.Background(), req)
	assert.ErrorIs(t, err, apierr.ErrCabinOnHold)
}

func TestCommitter_Cancel(t *testing.T) {
	cabin := &models.Cabin{
		ID: uuid.New(), ShortCode: "ZB05", CalendarRef: "cal-zb05", MaxAdults: 4,
		BasePricePerNight: decimal.RequireFromString("400"),
	}
	committer, bookings := newTestCommitter(t, cabin)

	req := CommitRequest{
		CabinIdentifier: "ZB05",
		CheckIn:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:        time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		CustomerName:    "Yossi",
		CustomerEmail:   "yossi@example.com",
	}
	result, err := committer.Commit(context.Background(), req)
	require.NoError(t, err)

	bookings.mu.Lock()
	bookings.bookings[result.Booking.ID].Cabin = *cabin
	bookings.mu.Unlock()

	require.NoError(t, committer.Cancel(context.Background(), result.Booking.ID))

	stored, err := bookings.GetByID(context.Background(), result.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, stored.Status)
}

type countingNotifier struct {
	receipts int
}

func (n *countingNotifier) SendBookingConfirmation(ctx context.Context, bookingID string) error {
	return nil
}
func (n *countingNotifier) SendPaymentReceipt(ctx context.Context, transactionID string) error {
	n.receipts++
	return nil
}

func TestCommitter_ReconcilePaymentWebhook_DuplicateDeliveryIsNoop(t *testing.T) {
	transactions := &memTransactionRepo{transactions: []*models.Transaction{
		{ID: uuid.New(), PaymentRef: "pay_1", Status: models.TransactionPending},
	}}
	notifier := &countingNotifier{}
	committer := NewCommitter(
		&memCabinRepo{},
		&memCustomerRepo{},
		newMemBookingRepo(),
		transactions,
		&memAuditRepo{},
		hold.NewManager(nil, 900),
		calendar.NewFakeGateway(),
		pricing.NewEngine(nil, nil, nil),
		&fakePaymentGateway{},
		notifier,
		time.UTC,
	)

	require.NoError(t, committer.ReconcilePaymentWebhook(context.Background(), "pay_1", true))
	assert.Equal(t, models.TransactionCompleted, transactions.transactions[0].Status)
	assert.Equal(t, 1, notifier.receipts)

	// Duplicate delivery of the same succeeded event must not re-send the receipt.
	require.NoError(t, committer.ReconcilePaymentWebhook(context.Background(), "pay_1", true))
	assert.Equal(t, 1, notifier.receipts)
}
