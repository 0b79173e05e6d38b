// internal/agent/engine.go
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cabinreserve/internal/assets"
	"cabinreserve/internal/availability"
	"cabinreserve/internal/booking"
	"cabinreserve/internal/hold"
	"cabinreserve/internal/models"
	"cabinreserve/internal/pricing"
	"cabinreserve/internal/repositories/interfaces"
)

// contextCarry is the turn-to-turn memory the agent keeps in the assistant
// message's metadata: whatever a human host would remember about "what we
// were just talking about".
type contextCarry struct {
	CabinID    string `json:"cabin_id,omitempty"`
	CheckIn    string `json:"check_in,omitempty"`
	CheckOut   string `json:"check_out,omitempty"`
	HasQuote   bool   `json:"has_quote,omitempty"`
	QuoteTotal string `json:"quote_total,omitempty"`
}

type messageMetadata struct {
	Intent     string       `json:"intent,omitempty"`
	Confidence float64      `json:"confidence,omitempty"`
	Carry      contextCarry `json:"carry,omitempty"`
}

// TurnRequest is one inbound message in a conversation.
type TurnRequest struct {
	ConversationID *uuid.UUID
	CustomerID     *uuid.UUID
	Channel        models.ConversationChannel
	Message        string
}

// TurnResult is the agent's reply plus the classification that produced it.
type TurnResult struct {
	ConversationID uuid.UUID
	Reply          string
	Intent         string
	Confidence     float64
}

// Engine runs one conversational turn end to end: context carry-over,
// FAQ/business-fact shortcuts, intent detection, tool dispatch, templated
// reply, and persistence. It holds no mutable state between turns — every
// turn is independently resolvable from the conversation log.
type Engine struct {
	Cabins        interfaces.CabinRepositoryInterface
	Conversations interfaces.ConversationRepositoryInterface
	FAQs          interfaces.FAQRepositoryInterface
	Facts         interfaces.BusinessFactRepositoryInterface
	Availability  *availability.Resolver
	Pricing       *pricing.Engine
	Holds         *hold.Manager
	Bookings      *booking.Committer
	Images        *assets.CabinImages
	BusinessTZ    *time.Location
}

func NewEngine(
	cabins interfaces.CabinRepositoryInterface,
	conversations interfaces.ConversationRepositoryInterface,
	faqs interfaces.FAQRepositoryInterface,
	facts interfaces.BusinessFactRepositoryInterface,
	availabilityResolver *availability.Resolver,
	pricingEngine *pricing.Engine,
	holds *hold.Manager,
	bookings *booking.Committer,
	images *assets.CabinImages,
	businessTZ *time.Location,
) *Engine {
	return &Engine{
		Cabins:        cabins,
		Conversations: conversations,
		FAQs:          faqs,
		Facts:         facts,
		Availability:  availabilityResolver,
		Pricing:       pricingEngine,
		Holds:         holds,
		Bookings:      bookings,
		Images:        images,
		BusinessTZ:    businessTZ,
	}
}

// HandleTurn resolves the conversation, persists the user message, produces
// a reply, persists the assistant message with its carry-over metadata, and
// files an FAQ suggestion when the reply wasn't served verbatim from an
// approved FAQ or business fact.
func (e *Engine) HandleTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	conversation, err := e.Conversations.GetOrCreate(ctx, req.ConversationID, req.CustomerID, req.Channel)
	if err != nil {
		return nil, fmt.Errorf("resolving conversation: %w", err)
	}

	carry := contextCarry{}
	if recent, err := e.Conversations.RecentMessages(ctx, conversation.ID, 10); err == nil {
		carry = lastCarry(recent)
	}

	if err := e.Conversations.AppendMessage(ctx, &models.Message{
		ConversationID: conversation.ID,
		Role:           models.RoleUser,
		Content:        req.Message,
	}); err != nil {
		return nil, fmt.Errorf("persisting user message: %w", err)
	}

	reply, intent, confidence, fromCanned, nextCarry := e.answer(ctx, req.Message, carry)

	metaBytes, err := json.Marshal(messageMetadata{Intent: intent, Confidence: confidence, Carry: nextCarry})
	if err != nil {
		return nil, fmt.Errorf("encoding turn metadata: %w", err)
	}
	if err := e.Conversations.AppendMessage(ctx, &models.Message{
		ConversationID: conversation.ID,
		Role:           models.RoleAssistant,
		Content:        reply,
		Metadata:       metaBytes,
	}); err != nil {
		return nil, fmt.Errorf("persisting assistant message: %w", err)
	}

	if !fromCanned {
		if err := e.FAQs.SuggestAnswer(ctx, &models.FAQ{Question: req.Message, Answer: reply}); err != nil {
			// Never fail a turn because the suggestion couldn't be filed.
			_ = err
		}
	}

	return &TurnResult{
		ConversationID: conversation.ID,
		Reply:          reply,
		Intent:         intent,
		Confidence:     confidence,
	}, nil
}

// answer runs the FAQ shortcut, then the business-fact shortcut, then full
// intent detection and tool dispatch, in that priority order.
func (e *Engine) answer(ctx context.Context, message string, carry contextCarry) (reply, intent string, confidence float64, fromCanned bool, nextCarry contextCarry) {
	if faq, dynamicHint := e.matchFAQ(ctx, message); faq != nil {
		if dynamicHint == "" {
			if err := e.FAQs.IncrementUsage(ctx, faq.ID); err != nil {
				_ = err
			}
			return faq.Answer, "faq", 1.0, true, carry
		}

		actions := actionsForIntent(dynamicHint)
		results, _ := e.dispatch(ctx, dynamicHint, actions, message, carry)
		nextCarry = e.updateCarry(carry, dynamicHint, message, results)
		return generateResponse(dynamicHint, actions, results), dynamicHint, 0.95, false, nextCarry
	}

	if fact := e.matchBusinessFact(ctx, message); fact != nil {
		return fact.FactValue, "business_fact", 1.0, true, carry
	}

	intent, confidence, actions := detectIntent(message, carry)
	results, _ := e.dispatch(ctx, intent, actions, message, carry)
	nextCarry = e.updateCarry(carry, intent, message, results)
	return generateResponse(intent, actions, results), intent, confidence, false, nextCarry
}

// matchFAQ substring-matches the message against approved FAQ questions. A
// match whose question/answer names dynamic data (the catalog, availability)
// returns a dispatch hint instead of the stored answer, since the stored
// text would go stale.
func (e *Engine) matchFAQ(ctx context.Context, message string) (*models.FAQ, string) {
	faqs, err := e.FAQs.ListApproved(ctx)
	if err != nil {
		return nil, ""
	}
	messageLower := strings.ToLower(message)
	for _, faq := range faqs {
		if faq.Question == "" || !strings.Contains(messageLower, strings.ToLower(faq.Question)) {
			continue
		}
		combined := strings.ToLower(faq.Question + " " + faq.Answer)
		for _, hint := range dynamicKeywordHints {
			if containsAny(combined, hint.keywords) {
				return faq, hint.intent
			}
		}
		return faq, ""
	}
	return nil, ""
}

func (e *Engine) matchBusinessFact(ctx context.Context, message string) *models.BusinessFact {
	messageLower := strings.ToLower(message)
	for _, entry := range factKeywordTable {
		if !containsAny(messageLower, entry.keywords) {
			continue
		}
		if fact, err := e.Facts.GetByKey(ctx, entry.key); err == nil {
			return fact
		}
	}
	return nil
}

// dispatch runs the tool(s) named by actions and assembles their output for
// the response templates. Any precondition it can't satisfy (missing cabin,
// missing dates) sets results.Missing instead of calling the tool.
func (e *Engine) dispatch(ctx context.Context, intent string, actions []string, message string, carry contextCarry) (toolResults, string) {
	var results toolResults

	cabinCode := extractCabinID(message)
	if cabinCode == "" {
		cabinCode = carry.CabinID
	}
	checkInStr, checkOutStr := carry.CheckIn, carry.CheckOut
	if dates := extractDates(message, time.Now()); dates != nil {
		checkInStr, checkOutStr = dates.CheckIn, dates.CheckOut
	}

	for _, action := range actions {
		switch action {
		case "list_cabins":
			if cabins, err := e.Cabins.List(ctx); err == nil {
				results.ListCabins = cabins
			}

		case "cabin_info":
			if cabinCode == "" {
				results.Missing = "לא הבנתי לאיזה צימר התכוונת. אפשר שם הצימר או המספר שלו?"
				continue
			}
			if cabin, err := e.Cabins.GetByShortCode(ctx, cabinCode); err == nil {
				results.CabinInfo = cabin
				results.CabinImages = e.Images.Resolve(cabin)
			}

		case "availability":
			if checkInStr == "" || checkOutStr == "" {
				results.Missing = "באילו תאריכים תרצה לבדוק זמינות?"
				continue
			}
			checkIn, okIn := parseBusinessDate(checkInStr, e.BusinessTZ)
			checkOut, okOut := parseBusinessDate(checkOutStr, e.BusinessTZ)
			if !okIn || !okOut {
				results.Missing = "לא הצלחתי להבין את התאריכים."
				continue
			}
			cabins, err := e.Cabins.List(ctx)
			if err != nil {
				continue
			}
			free := e.Availability.Search(ctx, cabins, availability.SearchCriteria{
				CheckInUTC:  checkIn.UTC(),
				CheckOutUTC: checkOut.UTC(),
			})
			for _, cabin := range free {
				breakdown := e.Pricing.CalculateBreakdown(cabin, checkIn.UTC(), checkOut.UTC(), nil, true)
				results.Availability = append(results.Availability, availabilityHit{Cabin: cabin, Price: breakdown, Nights: breakdown.Nights})
			}

		case "quote":
			if cabinCode == "" || checkInStr == "" || checkOutStr == "" {
				results.Missing = "כדי לתת הצעת מחיר אני צריך את שם הצימר ואת תאריכי ההגעה והעזיבה."
				continue
			}
			cabin, err := e.Cabins.GetByShortCode(ctx, cabinCode)
			if err != nil {
				results.Missing = "לא מצאתי צימר כזה."
				continue
			}
			checkIn, okIn := parseBusinessDate(checkInStr, e.BusinessTZ)
			checkOut, okOut := parseBusinessDate(checkOutStr, e.BusinessTZ)
			if !okIn || !okOut {
				results.Missing = "לא הצלחתי להבין את התאריכים."
				continue
			}
			breakdown := e.Pricing.CalculateBreakdown(cabin, checkIn.UTC(), checkOut.UTC(), nil, true)
			results.Quote = &breakdown
			results.QuoteCabin = cabin

		case "hold":
			if cabinCode == "" || checkInStr == "" || checkOutStr == "" {
				results.Missing = "כדי לשריין אני צריך את שם הצימר ואת תאריכי ההגעה והעזיבה."
				continue
			}
			cabin, err := e.Cabins.GetByShortCode(ctx, cabinCode)
			if err != nil {
				results.Missing = "לא מצאתי צימר כזה."
				continue
			}
			h, err := e.Holds.CreateHold(ctx, cabin.ID.String(), checkInStr, checkOutStr, nil, extractCustomerName(message))
			if err != nil {
				results.Missing = "הצימר הזה כבר משוריין לתאריכים האלה."
				continue
			}
			results.Hold = h

		case "book":
			if cabinCode == "" || checkInStr == "" || checkOutStr == "" {
				results.Missing = "כדי להשלים הזמנה אני צריך את שם הצימר ואת תאריכי ההגעה והעזיבה."
				continue
			}
			checkIn, okIn := parseBusinessDate(checkInStr, e.BusinessTZ)
			checkOut, okOut := parseBusinessDate(checkOutStr, e.BusinessTZ)
			if !okIn || !okOut {
				results.Missing = "לא הצלחתי להבין את התאריכים."
				continue
			}
			commitReq := booking.CommitRequest{
				CabinIdentifier: cabinCode,
				CheckIn:         checkIn,
				CheckOut:        checkOut,
				CustomerName:    extractCustomerName(message),
				ApplyDiscounts:  true,
			}
			if results.Hold != nil {
				commitReq.HoldID = &results.Hold.ID
			}
			commitResult, err := e.Bookings.Commit(ctx, commitReq)
			if err != nil {
				results.Missing = "לא הצלחתי להשלים את ההזמנה, אנא נסה שוב או פנה אלינו ישירות."
				continue
			}
			results.Booking = commitResult.Booking
		}
	}

	return results, results.Missing
}

func (e *Engine) updateCarry(prev contextCarry, intent string, message string, results toolResults) contextCarry {
	next := prev

	if cabinCode := extractCabinID(message); cabinCode != "" {
		next.CabinID = cabinCode
	} else if results.CabinInfo != nil {
		next.CabinID = results.CabinInfo.ShortCode
	} else if results.QuoteCabin != nil {
		next.CabinID = results.QuoteCabin.ShortCode
	}

	if dates := extractDates(message, time.Now()); dates != nil {
		next.CheckIn = dates.CheckIn
		next.CheckOut = dates.CheckOut
	}

	if results.Quote != nil {
		next.HasQuote = true
		next.QuoteTotal = results.Quote.Total.StringFixed(2)
	}
	if intent == "confirm" || intent == "book_now" || intent == "book" {
		next.HasQuote = false
	}

	return next
}

func lastCarry(messages []*models.Message) contextCarry {
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if msg.Role != models.RoleAssistant || len(msg.Metadata) == 0 {
			continue
		}
		var meta messageMetadata
		if err := json.Unmarshal(msg.Metadata, &meta); err == nil {
			return meta.Carry
		}
		return contextCarry{}
	}
	return contextCarry{}
}

func parseBusinessDate(s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc), true
}

var dynamicKeywordHints = []struct {
	keywords []string
	intent   string
}{
	{[]string{"רשימת הצימרים", "list of cabins", "כל הצימרים"}, "list_cabins"},
	{[]string{"זמינות", "availability"}, "availability"},
}

var factKeywordTable = []struct {
	keywords []string
	key      string
}{
	{[]string{"צ'ק אין", "check in", "כניסה", "שעת כניסה"}, "check_in_time"},
	{[]string{"צ'ק אאוט", "check out", "יציאה", "שעת יציאה"}, "check_out_time"},
	{[]string{"ביטול", "cancellation", "מדיניות ביטול"}, "cancellation_policy"},
	{[]string{"חיות", "כלב", "pets", "pet"}, "pets_allowed"},
	{[]string{"חניה", "parking"}, "parking"},
	{[]string{"כשר", "kosher"}, "kosher"},
	{[]string{"wifi", "אינטרנט", "ראוטר"}, "wifi"},
}
