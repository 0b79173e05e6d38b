// internal/agent/intent.go
package agent

import "strings"

// intentKeywords pairs an intent name with the keyword list that votes for
// it. Order matters: it is the tie-break order when two intents tie on
// score, mirroring dict-iteration order in the original implementation.
type intentKeywords struct {
	intent   string
	keywords []string
}

var intentTable = []intentKeywords{
	{"availability", []string{"זמינות", "פנוי", "פנויה", "זמין", "available", "availability", "free", "vacant"}},
	{"quote", []string{"מחיר", "כמה", "עולה", "תמחור", "price", "cost", "quote", "הצעת מחיר"}},
	{"hold", []string{"שריין", "הזמנה", "להזמין", "hold", "reserve", "book"}},
	{"book", []string{"אישור", "לאשר", "לסיים", "confirm", "approve", "complete"}},
	{"cabin_info", []string{"תמונה", "תמונות", "מידע", "כתובת", "תכונות", "פרטים", "אודות", "מה יש", "מה כולל", "image", "info", "address", "features", "details", "about"}},
	{"location", []string{"מיקום", "איפה", "כתובת", "מפה", "maps", "waze", "גוגל מפות", "וייז", "location", "address", "איך מגיעים"}},
	{"list_cabins", []string{"רשימה", "כל הצימרים", "שמות", "list", "all cabins", "names"}},
	{"greeting", []string{"שלום", "היי", "בוקר", "ערב", "hello", "hi", "hey"}},
}

var priceKeywords = []string{"מחיר", "כמה", "עולה", "תמחור", "price", "cost", "quote"}
var infoKeywords = []string{"תמונה", "תמונות", "מידע", "כתובת", "תכונות", "פרטים", "אודות", "מה יש", "מה כולל", "image", "info", "address", "features", "details", "about"}
var bookNowKeywords = []string{"תזמין", "עשה הזמנה", "צור הזמנה", "בוא נזמין", "בואו נזמין", "תעשה הזמנה"}
var affirmations = map[string]bool{
	"כן": true, "אוקיי": true, "בסדר": true, "בוא": true, "בואו": true, "יאללה": true,
	"yes": true, "ok": true, "okay": true,
}
var photoOnlyPhrases = map[string]bool{
	"תמונה?": true, "תמונה": true, "תמונות?": true, "תמונות": true,
	"תמונה של": true, "תמונות של": true, "אפשר לראות תמונה": true, "אפשר לראות תמונות": true,
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// detectIntent scores the message against the keyword table, applies the
// same context-sensitive overrides as the original agent, and returns the
// primary intent, a confidence in [0.5, 0.95], and the tool actions it
// implies.
func detectIntent(message string, carry contextCarry) (intent string, confidence float64, actions []string) {
	messageLower := strings.ToLower(message)

	scores := make(map[string]int, len(intentTable))
	order := make([]string, 0, len(intentTable))
	for _, ik := range intentTable {
		score := 0
		for _, kw := range ik.keywords {
			if strings.Contains(messageLower, kw) {
				score++
			}
		}
		if score > 0 {
			scores[ik.intent] = score
			order = append(order, ik.intent)
		}
	}

	if len(scores) == 0 {
		intent, confidence, actions = "greeting", 0.5, nil
	} else {
		primary := order[0]
		maxScore := scores[primary]
		total := 0
		for _, s := range scores {
			total += s
		}
		for _, name := range order {
			if scores[name] > maxScore {
				primary = name
				maxScore = scores[name]
			}
		}
		confidence = 0.5 + (float64(maxScore)/float64(max(total, 1)))*0.45
		if confidence > 0.95 {
			confidence = 0.95
		}
		intent = primary
		actions = actionsForIntent(primary)
	}

	messageWords := strings.Fields(messageLower)
	trimmed := strings.TrimSpace(messageLower)

	// "תמונה?" style short photo requests stay cabin_info whenever a cabin
	// is already in context, regardless of whatever else scored higher.
	if photoOnlyPhrases[trimmed] || (containsAny(messageLower, []string{"תמונה", "תמונות", "לראות תמונה"}) && len(messageWords) <= 4) {
		if carry.CabinID != "" {
			return "cabin_info", 0.9, []string{"cabin_info"}
		}
	}

	if affirmations[trimmed] {
		if carry.HasQuote {
			return "confirm", 0.9, []string{"book"}
		}
		if carry.CabinID != "" && carry.CheckIn != "" && carry.CheckOut != "" {
			return "book_now", 0.8, []string{"hold", "book"}
		}
	}

	if containsAny(messageLower, bookNowKeywords) {
		if carry.CabinID != "" && carry.CheckIn != "" && carry.CheckOut != "" {
			return "book_now", 0.9, []string{"hold", "book"}
		}
	}

	if extracted := extractCabinID(message); extracted != "" {
		if containsAny(messageLower, priceKeywords) {
			if len(actions) == 0 || !contains(actions, "quote") {
				intent = "quote"
				confidence = 0.8
				actions = []string{"quote"}
			}
		} else if containsAny(messageLower, infoKeywords) || len(strings.Fields(message)) <= 3 {
			if len(actions) == 0 || !contains(actions, "cabin_info") {
				intent = "cabin_info"
				confidence = 0.8
				actions = []string{"cabin_info"}
			}
		}
	}

	return intent, confidence, actions
}

func actionsForIntent(intent string) []string {
	switch intent {
	case "availability":
		return []string{"availability"}
	case "quote":
		return []string{"quote"}
	case "hold":
		return []string{"hold"}
	case "book":
		return []string{"hold", "book"}
	case "cabin_info":
		return []string{"cabin_info"}
	case "location":
		return []string{"cabin_info"}
	case "list_cabins":
		return []string{"list_cabins"}
	case "confirm":
		return []string{"book"}
	case "book_now":
		return []string{"hold", "book"}
	default:
		return nil
	}
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}
