// internal/agent/templates.go
package agent

import (
	"fmt"
	"net/url"
	"strings"

	"cabinreserve/internal/models"
	"cabinreserve/internal/pricing"
)

// availabilityHit pairs a free cabin with the quote for the searched dates,
// used only to render the availability reply template.
type availabilityHit struct {
	Cabin  *models.Cabin
	Price  pricing.PriceBreakdown
	Nights int
}

// toolResults carries whatever the dispatched tools produced, keyed the way
// the response templates expect to consume them.
type toolResults struct {
	ListCabins   []*models.Cabin
	CabinInfo    *models.Cabin
	CabinImages  []string
	Availability []availabilityHit
	Quote        *pricing.PriceBreakdown
	QuoteCabin   *models.Cabin
	Hold         *models.Hold
	Booking      *models.Booking
	Missing      string
}

func renderListCabins(results toolResults) string {
	if len(results.ListCabins) == 0 {
		return "לא נמצאו צימרים."
	}
	var b strings.Builder
	b.WriteString("🏡 **רשימת כל הצימרים:**\n\n")
	for _, cabin := range results.ListCabins {
		fmt.Fprintf(&b, "• %s (%s) - %s\n", cabin.Name, cabin.ShortCode, orNA(cabin.Area))
	}
	return b.String()
}

func renderCabinInfo(results toolResults) string {
	cabin := results.CabinInfo
	if cabin == nil {
		return "לא מצאתי מידע על הצימר."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🏡 **%s**\n", cabin.Name)
	fmt.Fprintf(&b, "מספר: %s\n", cabin.ShortCode)
	if cabin.Area != "" {
		fmt.Fprintf(&b, "📍 אזור: %s\n", cabin.Area)
	}
	b.WriteString("\n")

	features := cabin.FeatureSet()
	if len(features) > 0 {
		names := make([]string, 0, len(features))
		for tag := range features {
			names = append(names, tag)
			if len(names) == 10 {
				break
			}
		}
		fmt.Fprintf(&b, "✨ תכונות: %s\n\n", strings.Join(names, ", "))
	}

	if cabin.MaxAdults > 0 || cabin.MaxKids > 0 {
		fmt.Fprintf(&b, "👥 אירוח: עד %d מבוגרים", cabin.MaxAdults)
		if cabin.MaxKids > 0 {
			fmt.Fprintf(&b, " ו-%d ילדים", cabin.MaxKids)
		}
		b.WriteString("\n\n")
	}

	if len(results.CabinImages) > 0 {
		b.WriteString("📷 תמונות:\n")
		for _, img := range results.CabinImages {
			fmt.Fprintf(&b, "%s\n", img)
		}
	} else {
		b.WriteString("📷 אין תמונות זמינות\n")
	}
	return b.String()
}

func renderLocation(results toolResults) string {
	cabin := results.CabinInfo
	if cabin == nil {
		return "❌ לא מצאתי מידע על הצימר."
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{cabin.Street, cabin.City, cabin.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	fullAddress := strings.Join(parts, ", ")
	if fullAddress == "" {
		return "❌ לא מצאתי כתובת לצימר זה. אנא פנה לבעלים לקבלת פרטים."
	}

	encoded := url.QueryEscape(fullAddress)
	googleMapsURL := fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%s", encoded)
	wazeURL := fmt.Sprintf("https://waze.com/ul?q=%s", encoded)

	var b strings.Builder
	fmt.Fprintf(&b, "📍 **מיקום הצימר %s:**\n\n", cabin.Name)
	fmt.Fprintf(&b, "**כתובת:** %s\n\n", fullAddress)
	b.WriteString("🗺️ **קישורים למפות:**\n")
	fmt.Fprintf(&b, "• [Google Maps](%s)\n", googleMapsURL)
	fmt.Fprintf(&b, "• [Waze](%s)\n\n", wazeURL)
	b.WriteString("💡 לחץ על הקישורים כדי לפתוח במפה או באפליקציית הניווט שלך.")
	return b.String()
}

func renderAvailability(results toolResults) string {
	if len(results.Availability) == 0 {
		return "❌ לא מצאתי צימרים זמינים בתאריכים שביקשת."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "✅ מצאתי %d צימרים זמינים בתאריכים שביקשת:\n\n", len(results.Availability))
	for _, hit := range results.Availability {
		fmt.Fprintf(&b, "🏡 %s (%s) - %s\n", hit.Cabin.Name, hit.Cabin.ShortCode, orNA(hit.Cabin.Area))
		if hit.Price.Total.IsPositive() {
			fmt.Fprintf(&b, "💰 מחיר: %s₪ ל-%d לילות\n", hit.Price.Total.StringFixed(2), hit.Nights)
		}
		b.WriteString("\n")
	}
	b.WriteString("איזה צימר מעניין אותך? אני יכול לתת לך הצעת מחיר מפורטת או לעזור להזמין.")
	return b.String()
}

func renderQuote(results toolResults) string {
	if results.Quote == nil {
		return "❌ לא הצלחתי לחשב מחיר. אנא נסה שוב."
	}
	quote := results.Quote
	cabinName := "N/A"
	if results.QuoteCabin != nil {
		cabinName = results.QuoteCabin.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💰 הצעת מחיר ל-%s:\n", cabinName)
	fmt.Fprintf(&b, "📅 %d לילות\n", quote.Nights)
	fmt.Fprintf(&b, "💵 סה\"כ: %s₪\n\n", quote.Total.StringFixed(2))
	b.WriteString("האם תרצה להזמין?")
	return b.String()
}

func renderBookingConfirmed(results toolResults) string {
	b := results.Booking
	var out strings.Builder
	out.WriteString("✅ ההזמנה אושרה!\n")
	fmt.Fprintf(&out, "🔖 מספר הזמנה: %s\n", b.ID.String())
	fmt.Fprintf(&out, "📅 %s עד %s\n", b.CheckInDate.Format("2006-01-02"), b.CheckOutDate.Format("2006-01-02"))
	fmt.Fprintf(&out, "💵 סה\"כ: %s₪\n", b.TotalPrice.StringFixed(2))
	return out.String()
}

func renderHold(results toolResults) string {
	if results.Hold == nil {
		return "❌ לא הצלחתי ליצור שריין."
	}
	var b strings.Builder
	b.WriteString("✅ שריינתי לך את הצימר!\n")
	fmt.Fprintf(&b, "🔒 מספר הזמנה: %s\n", results.Hold.ID.String())
	fmt.Fprintf(&b, "⏰ השריון תקף עד %s\n", results.Hold.ExpiresAt.Format("2006-01-02 15:04"))
	return b.String()
}

// generateResponse picks the template matching intent/actions and the
// available tool outputs, falling through to a generic prompt when neither
// matches (missing entities, unhandled intent).
func generateResponse(intent string, actions []string, results toolResults) string {
	if results.Missing != "" {
		return results.Missing
	}

	switch {
	case intent == "list_cabins":
		return renderListCabins(results)
	case intent == "cabin_info":
		return renderCabinInfo(results)
	case intent == "location":
		return renderLocation(results)
	case intent == "availability":
		return renderAvailability(results)
	case intent == "quote":
		return renderQuote(results)
	case (intent == "confirm" || intent == "book_now" || intent == "book") && results.Booking != nil:
		return renderBookingConfirmed(results)
	case intent == "hold" && results.Hold != nil:
		return renderHold(results)
	case intent == "greeting":
		return "שלום! תודה על פנייתך. אני כאן כדי לעזור לך למצוא צימר מתאים. איך אוכל לעזור?"
	default:
		return "אשמח לענות על שאלותיך. מה תרצה לדעת?"
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
