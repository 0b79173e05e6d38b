package agent

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

	"cabinreserve/internal/assets"
	"cabinreserve/internal/availability"
	"cabinreserve/internal/booking"
	"cabinreserve/internal/calendar"
	"cabinreserve/internal/hold"
	"cabinreserve/internal/models"
	"cabinreserve/internal/pricing"
)

// --- in-memory repository fakes, mirroring the booking package's test doubles ---

type fakeCabinRepo struct{ cabins []*models.Cabin }

func (r *fakeCabinRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Cabin, error) {
	for _, c := range r.cabins {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}
func (r *fakeCabinRepo) GetByShortCode(ctx context.Context, code string) (*models.Cabin, error) {
	for _, c := range r.cabins {
		if c.ShortCode == code {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}
func (r *fakeCabinRepo) GetByName(ctx context.Context, name string) (*models.Cabin, error) {
	return nil, errors.New("not found")
}
func (r *fakeCabinRepo) GetByCalendarRefSuffix(ctx context.Context, suffix string) (*models.Cabin, error) {
	return nil, errors.New("not found")
}
func (r *fakeCabinRepo) List(ctx context.Context) ([]*models.Cabin, error) { return r.cabins, nil }

type fakeConversationRepo struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]*models.Conversation
	messages      map[uuid.UUID][]*models.Message
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[uuid.UUID]*models.Conversation),
		messages:      make(map[uuid.UUID][]*models.Message),
	}
}
func (r *fakeConversationRepo) GetOrCreate(ctx context.Context, conversationID, customerID *uuid.UUID, channel models.ConversationChannel) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conversationID != nil {
		if c, ok := r.conversations[*conversationID]; ok {
			return c, nil
		}
	}
	c := &models.Conversation{ID: uuid.New(), CustomerID: customerID, Channel: channel, Status: models.ConversationActive}
	r.conversations[c.ID] = c
	return c, nil
}
func (r *fakeConversationRepo) AppendMessage(ctx context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = uuid.New()
	message.CreatedAt = time.Now().UTC()
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], message)
	return nil
}
func (r *fakeConversationRepo) RecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.messages[conversationID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

type fakeFAQRepo struct {
	mu       sync.Mutex
	approved []*models.FAQ
	pending  []*models.FAQ
}

func (r *fakeFAQRepo) ListApproved(ctx context.Context) ([]*models.FAQ, error) { return r.approved, nil }
func (r *fakeFAQRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	for _, f := range r.approved {
		if f.ID == id {
			f.UsageCount++
		}
	}
	return nil
}
func (r *fakeFAQRepo) SuggestAnswer(ctx context.Context, faq *models.FAQ) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, faq)
	return nil
}
func (r *fakeFAQRepo) ListPending(ctx context.Context) ([]*models.FAQ, error) { return r.pending, nil }
func (r *fakeFAQRepo) ListAll(ctx context.Context) ([]*models.FAQ, error)     { return r.approved, nil }
func (r *fakeFAQRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	return nil, errors.New("not found")
}
func (r *fakeFAQRepo) Approve(ctx context.Context, id uuid.UUID, approved bool, question, answer string) (*models.FAQ, error) {
	return nil, errors.New("not found")
}
func (r *fakeFAQRepo) Update(ctx context.Context, id uuid.UUID, question, answer string) (*models.FAQ, error) {
	return nil, errors.New("not found")
}
func (r *fakeFAQRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeFactRepo struct{ facts map[string]*models.BusinessFact }

func (r *fakeFactRepo) GetByKey(ctx context.Context, key string) (*models.BusinessFact, error) {
	if f, ok := r.facts[key]; ok {
		return f, nil
	}
	return nil, errors.New("not found")
}
func (r *fakeFactRepo) ListActive(ctx context.Context) ([]*models.BusinessFact, error) {
	var out []*models.BusinessFact
	for _, f := range r.facts {
		out = append(out, f)
	}
	return out, nil
}
func (r *fakeFactRepo) ListAll(ctx context.Context, category string) ([]*models.BusinessFact, error) {
	return r.ListActive(ctx)
}
func (r *fakeFactRepo) Upsert(ctx context.Context, fact *models.BusinessFact) (*models.BusinessFact, error) {
	return fact, nil
}
func (r *fakeFactRepo) Deactivate(ctx context.Context, key string) error { return nil }

type fakeCustomerRepo struct{ mu sync.Mutex }

func (r *fakeCustomerRepo) UpsertByEmailOrPhone(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.New()
	return c, nil
}
func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return &models.Customer{ID: id}, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo { return &fakeBookingRepo{bookings: map[uuid.UUID]*models.Booking{}} }
func (r *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = uuid.New()
	r.bookings[b.ID] = b
	return nil
}
func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}
func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
	return nil
}
func (r *fakeBookingRepo) ListActiveForCabin(ctx context.Context, cabinID uuid.UUID) ([]*models.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) ListAll(ctx context.Context, statusFilter string) ([]*models.Booking, error) {
	return nil, nil
}

type fakeTransactionRepo struct{}

func (fakeTransactionRepo) Create(ctx context.Context, t *models.Transaction) error { return nil }
func (fakeTransactionRepo) GetByPaymentRef(ctx context.Context, ref string) (*models.Transaction, error) {
	return nil, errors.New("not found")
}
func (fakeTransactionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TransactionStatus) error {
	return nil
}
func (fakeTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return nil, errors.New("not found")
}

type fakeAuditRepo struct{}

func (fakeAuditRepo) Append(ctx context.Context, entry *models.AuditEntry) error { return nil }
func (fakeAuditRepo) List(ctx context.Context, tableName, recordID string, limit int) ([]*models.AuditEntry, error) {
	return nil, nil
}

type fakePaymentGateway struct{}

func (fakePaymentGateway) CreatePaymentIntent(ctx context.Context, bookingID string, amount decimal.Decimal, currency string) (booking.PaymentIntent, error) {
	return booking.PaymentIntent{PaymentRef: "pay_" + bookingID}, nil
}

func newTestEngine(t *testing.T, cabins []*models.Cabin, faqs []*models.FAQ, facts map[string]*models.BusinessFact) *Engine {
	t.Helper()
	cabinRepo := &fakeCabinRepo{cabins: cabins}
	// The hold manager is shared between the committer and the engine, exactly
	// as cmd/server/main.go wires a single instance into both — a hold
	// created during dispatch must be the same one the commit path looks up.
	holds := hold.NewManager(nil, 900)
	committer := booking.NewCommitter(
		cabinRepo,
		&fakeCustomerRepo{},
		newFakeBookingRepo(),
		fakeTransactionRepo{},
		fakeAuditRepo{},
		holds,
		calendar.NewFakeGateway(),
		pricing.NewEngine(nil, nil, nil),
		fakePaymentGateway{},
		booking.NoopNotifier{},
		time.UTC,
	)
	return NewEngine(
		cabinRepo,
		newFakeConversationRepo(),
		&fakeFAQRepo{approved: faqs},
		&fakeFactRepo{facts: facts},
		availability.NewResolver(calendar.NewFakeGateway()),
		pricing.NewEngine(nil, nil, nil),
		holds,
		committer,
		assets.NewCabinImages("", ""),
		time.UTC,
	)
}

func TestHandleTurn_Greeting(t *testing.T) {
	e := newTestEngine(t, nil, nil, nil)
	result, err := e.HandleTurn(context.Background(), TurnRequest{Message: "שלום"})
	require.NoError(t, err)
	assert.Equal(t, "greeting", result.Intent)
	assert.Contains(t, result.Reply, "שלום")
}

func TestHandleTurn_ListCabins(t *testing.T) {
	cabin := &models.Cabin{ID: uuid.New(), ShortCode: "ZB01", Name: "Cabin One", Area: "Galilee"}
	e := newTestEngine(t, []*models.Cabin{cabin}, nil, nil)
	result, err := e.HandleTurn(context.Background(), TurnRequest{Message: "אפשר רשימה של כל הצימרים?"})
	require.NoError(t, err)
	assert.Equal(t, "list_cabins", result.Intent)
	assert.Contains(t, result.Reply, "Cabin One")
}

func TestHandleTurn_BusinessFactShortcut(t *testing.T) {
	facts := map[string]*models.BusinessFact{
		"check_in_time": {FactKey: "check_in_time", FactValue: "15:00", IsActive: true},
	}
	e := newTestEngine(t, nil, nil, facts)
	result, err := e.HandleTurn(context.Background(), TurnRequest{Message: "מה שעת הכניסה?"})
	require.NoError(t, err)
	assert.Equal(t, "business_fact", result.Intent)
	assert.Equal(t, "15:00", result.Reply)
}

func TestHandleTurn_FAQShortcut(t *testing.T) {
	faqs := []*models.FAQ{{ID: uuid.New(), Question: "יש חניה", Answer: "כן, יש חניה חינם בשטח.", Approved: true}}
	e := newTestEngine(t, nil, faqs, nil)
	result, err := e.HandleTurn(context.Background(), TurnRequest{Message: "שאלה: יש חניה בצימר?"})
	require.NoError(t, err)
	assert.Equal(t, "faq", result.Intent)
	assert.Equal(t, "כן, יש חניה חינם בשטח.", result.Reply)
}

func TestHandleTurn_FAQDynamicHintOverridesStaticAnswer(t *testing.T) {
	cabin := &models.Cabin{ID: uuid.New(), ShortCode: "ZB01", Name: "Cabin One"}
	faqs := []*models.FAQ{{ID: uuid.New(), Question: "אילו צימרים יש לכם", Answer: "רשימת הצימרים מתעדכנת, בדוק זמינות.", Approved: true}}
	e := newTestEngine(t, []*models.Cabin{cabin}, faqs, nil)
	result, err := e.HandleTurn(context.Background(), TurnRequest{Message: "אילו צימרים יש לכם בכלל?"})
	require.NoError(t, err)
	assert.Equal(t, "list_cabins", result.Intent)
	assert.Contains(t, result.Reply, "Cabin One")
}

func TestHandleTurn_QuoteRequiresCabinAndDates(t *testing.T) {
	e := newTestEngine(t, nil, nil, nil)
	result, err := e.HandleTurn(context.Background(), TurnRequest{Message: "כמה עולה?"})
	require.NoError(t, err)
	assert.Equal(t, "quote", result.Intent)
	assert.Contains(t, result.Reply, "צימר")
}

func TestHandleTurn_QuoteThenConfirmCompletesBooking(t *testing.T) {
	cabin := &models.Cabin{
		ID:                uuid.New(),
		ShortCode:         "ZB01",
		Name:              "Cabin One",
		MaxAdults:         4,
		BasePricePerNight: decimal.RequireFromString("400"),
		CalendarRef:       "calendar-zb01",
	}
	e := newTestEngine(t, []*models.Cabin{cabin}, nil, nil)

	first, err := e.HandleTurn(context.Background(), TurnRequest{Message: "כמה עולה zb01 מ15.3.26 עד 17.3.26?"})
	require.NoError(t, err)
	assert.Equal(t, "quote", first.Intent)
	assert.Contains(t, first.Reply, "Cabin One")

	second, err := e.HandleTurn(context.Background(), TurnRequest{
		ConversationID: &first.ConversationID,
		Message:        "כן",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirm", second.Intent)
	assert.Contains(t, second.Reply, "ההזמנה אושרה")
}

// TestHandleTurn_BookNowCreatesHoldThenBooksInSameTurn exercises the
// "book_now" path (actions: hold, book) in a single dispatch cycle. The hold
// created for the booking must not be treated as a conflicting hold by the
// commit it feeds.
func TestHandleTurn_BookNowCreatesHoldThenBooksInSameTurn(t *testing.T) {
	cabin := &models.Cabin{
		ID:                uuid.New(),
		ShortCode:         "ZB01",
		Name:              "Cabin One",
		MaxAdults:         4,
		BasePricePerNight: decimal.RequireFromString("400"),
		CalendarRef:       "calendar-zb01",
	}
	e := newTestEngine(t, []*models.Cabin{cabin}, nil, nil)

	first, err := e.HandleTurn(context.Background(), TurnRequest{Message: "האם zb01 פנוי מ20.3.26 עד 22.3.26?"})
	require.NoError(t, err)
	assert.Equal(t, "availability", first.Intent)

	second, err := e.HandleTurn(context.Background(), TurnRequest{
		ConversationID: &first.ConversationID,
		Message:        "תזמין על שם דנה",
	})
	require.NoError(t, err)
	assert.Equal(t, "book_now", second.Intent)
	assert.Contains(t, second.Reply, "ההזמנה אושרה")
}

func TestDetectIntent_Availability(t *testing.T) {
	intent, confidence, actions := detectIntent("האם יש צימר פנוי בסוף השבוע?", contextCarry{})
	assert.Equal(t, "availability", intent)
	assert.Equal(t, []string{"availability"}, actions)
	assert.GreaterOrEqual(t, confidence, 0.5)
}

func TestDetectIntent_AffirmationWithCachedQuote(t *testing.T) {
	intent, confidence, actions := detectIntent("כן", contextCarry{HasQuote: true})
	assert.Equal(t, "confirm", intent)
	assert.Equal(t, []string{"book"}, actions)
	assert.Equal(t, 0.9, confidence)
}

func TestDetectIntent_PhotoRequestWithCabinInContext(t *testing.T) {
	intent, _, actions := detectIntent("תמונות?", contextCarry{CabinID: "ZB01"})
	assert.Equal(t, "cabin_info", intent)
	assert.Equal(t, []string{"cabin_info"}, actions)
}

func TestExtractDates_DottedPair(t *testing.T) {
	dates := extractDates("מחפש מ15.3.26 עד 17.3.26", time.Now())
	require.NotNil(t, dates)
	assert.Equal(t, "2026-03-15", dates.CheckIn)
	assert.Equal(t, "2026-03-17", dates.CheckOut)
}

func TestExtractDates_SingleDateImpliesNextDayCheckout(t *testing.T) {
	dates := extractDates("מגיע ב15.3.26", time.Now())
	require.NotNil(t, dates)
	assert.Equal(t, "2026-03-15", dates.CheckIn)
	assert.Equal(t, "2026-03-16", dates.CheckOut)
}

func TestExtractDates_HebrewMonthRange(t *testing.T) {
	dates := extractDates("15-17 במרץ 2026", time.Now())
	require.NotNil(t, dates)
	assert.Equal(t, "2026-03-15", dates.CheckIn)
	assert.Equal(t, "2026-03-17", dates.CheckOut)
}

func TestExtractDates_EntireMonth(t *testing.T) {
	dates := extractDates("מחפש כל יולי 2026", time.Now())
	require.NotNil(t, dates)
	assert.True(t, dates.IsMonthRange)
	assert.Equal(t, "2026-07-01", dates.CheckIn)
	assert.Equal(t, "2026-08-01", dates.CheckOut)
}

func TestExtractDates_TwoDigitYearPivot(t *testing.T) {
	old := extractDates("15.3.95", time.Now())
	require.NotNil(t, old)
	assert.Equal(t, "1995-03-15", old.CheckIn)

	recent := extractDates("15.3.26", time.Now())
	require.NotNil(t, recent)
	assert.Equal(t, "2026-03-15", recent.CheckIn)
}

func TestExtractCabinID_ShortCode(t *testing.T) {
	assert.Equal(t, "ZB02", extractCabinID("מה המחיר של zb02?"))
}

func TestExtractCabinID_NameAlias(t *testing.T) {
	assert.Equal(t, "ZB03", extractCabinID("צימר של מורן פנוי?"))
	assert.Equal(t, "ZB01", extractCabinID("יולי"))
}

func TestExtractCustomerName_AlShem(t *testing.T) {
	// The capturing group is non-greedy and stops at the first space, so
	// only the first name is captured — this mirrors the original pattern's
	// behavior rather than a hand-fixed "full name" extraction.
	assert.Equal(t, "משה", extractCustomerName("תשריינו על שם משה אופניק בבקשה"))
}

func TestExtractCustomerName_NameColonEnglish(t *testing.T) {
	assert.Equal(t, "john", extractCustomerName("name: John Doe"))
}
