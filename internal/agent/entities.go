// internal/agent/entities.go
package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// extractedDates is the result of date entity extraction. CheckIn/CheckOut
// are YYYY-MM-DD wall-clock dates in the business calendar, not UTC instants.
type extractedDates struct {
	CheckIn     string
	CheckOut    string
	IsMonthRange bool
}

var hebrewMonths = map[string]time.Month{
	"ינואר": time.January, "פברואר": time.February,
	"מרץ": time.March, "מרס": time.March, "מארס": time.March,
	"אפריל": time.April, "מאי": time.May, "יוני": time.June,
	"יולי": time.July, "אוגוסט": time.August,
	"ספטמבר": time.September, "אוקטובר": time.October,
	"נובמבר": time.November, "דצמבר": time.December,
}

const hebrewMonthAlt = `ינואר|פברואר|מרץ|מרס|מארס|אפריל|מאי|יוני|יולי|אוגוסט|ספטמבר|אוקטובר|נובמבר|דצמבר`

var monthRangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`כל\s+(` + hebrewMonthAlt + `)(?:\s+(\d{4}))?`),
	regexp.MustCompile(`במהלך\s+(` + hebrewMonthAlt + `)(?:\s+(\d{4}))?`),
	regexp.MustCompile(`בחודש\s+(` + hebrewMonthAlt + `)(?:\s+(\d{4}))?`),
	regexp.MustCompile(`(` + hebrewMonthAlt + `)\s+כולו(?:\s+(\d{4}))?`),
}

var dayRangeHebrewMonth = regexp.MustCompile(`(\d{1,2})[-\s]+(\d{1,2})\s+(?:ב|ל)?(` + hebrewMonthAlt + `)(?:\s+(\d{4}))?`)
var dottedDate = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})(?:\.(\d{2,4}))?`)
var slashedDate = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)

// extractDates mirrors the original's priority: full-month phrases first,
// then a dashed day range with a Hebrew month name, then dotted day.month
// pairs (optionally paired into a check-in/check-out range), then
// slash-delimited absolute dates. Returns nil when nothing matched.
func extractDates(message string, now time.Time) *extractedDates {
	messageLower := strings.ToLower(message)
	currentYear := now.Year()

	for _, pattern := range monthRangePatterns {
		m := pattern.FindStringSubmatch(messageLower)
		if m == nil {
			continue
		}
		month, ok := hebrewMonths[m[1]]
		if !ok {
			continue
		}
		year := currentYear
		if len(m) > 2 && m[2] != "" {
			if y, err := strconv.Atoi(m[2]); err == nil {
				year = y
			}
		}
		checkIn := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		checkOut := checkIn.AddDate(0, 1, 0)
		return &extractedDates{
			CheckIn:      checkIn.Format("2006-01-02"),
			CheckOut:     checkOut.Format("2006-01-02"),
			IsMonthRange: true,
		}
	}

	if m := dayRangeHebrewMonth.FindStringSubmatch(messageLower); m != nil {
		month, ok := hebrewMonths[m[3]]
		if !ok {
			month = time.March
		}
		year := currentYear
		if m[4] != "" {
			if y, err := strconv.Atoi(m[4]); err == nil {
				year = y
			}
		}
		day1, err1 := strconv.Atoi(m[1])
		day2, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			checkIn := time.Date(year, month, day1, 0, 0, 0, 0, time.UTC)
			checkOut := time.Date(year, month, day2, 0, 0, 0, 0, time.UTC)
			if checkOut.Before(checkIn) {
				checkOut = checkOut.AddDate(0, 0, 1)
			}
			return &extractedDates{CheckIn: checkIn.Format("2006-01-02"), CheckOut: checkOut.Format("2006-01-02")}
		}
	}

	if matches := dottedDate.FindAllStringSubmatch(message, -1); len(matches) >= 2 {
		in, ok1 := dottedToDate(matches[0], currentYear)
		out, ok2 := dottedToDate(matches[1], currentYear)
		if ok1 && ok2 {
			if !out.After(in) {
				out = out.AddDate(0, 0, 1)
			}
			return &extractedDates{CheckIn: in.Format("2006-01-02"), CheckOut: out.Format("2006-01-02")}
		}
	} else if len(matches) == 1 {
		if in, ok := dottedToDate(matches[0], currentYear); ok {
			out := in.AddDate(0, 0, 1)
			return &extractedDates{CheckIn: in.Format("2006-01-02"), CheckOut: out.Format("2006-01-02")}
		}
	}

	if matches := slashedDate.FindAllStringSubmatch(message, -1); len(matches) >= 2 {
		in, ok1 := slashedToDate(matches[0])
		out, ok2 := slashedToDate(matches[1])
		if ok1 && ok2 {
			if !out.After(in) {
				out = out.AddDate(0, 0, 1)
			}
			return &extractedDates{CheckIn: in.Format("2006-01-02"), CheckOut: out.Format("2006-01-02")}
		}
	}

	return nil
}

// dottedToDate parses a "(day, month, year)" submatch from dottedDate,
// pivoting two-digit years at 50 the same way the original does.
func dottedToDate(m []string, currentYear int) (time.Time, bool) {
	day, err1 := strconv.Atoi(m[1])
	month, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return time.Time{}, false
	}
	year := currentYear
	if m[3] != "" {
		y, err := strconv.Atoi(m[3])
		if err != nil {
			return time.Time{}, false
		}
		year = pivotYear(y)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func slashedToDate(m []string) (time.Time, bool) {
	day, err1 := strconv.Atoi(m[1])
	month, err2 := strconv.Atoi(m[2])
	year, err3 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func pivotYear(y int) int {
	if y >= 100 {
		return y
	}
	if y < 50 {
		return 2000 + y
	}
	return 1900 + y
}

var cabinCodePattern = regexp.MustCompile(`(?i)\b(ZB\d{2})\b`)
// Go's regexp \w is ASCII-only (unlike Python's Unicode-aware \w), so
// punctuation stripping is expressed directly in terms of Unicode letter/
// number/space categories to avoid eating Hebrew text.
var punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// cabinNameAliases is an ordered list, not a map: Go map iteration order is
// randomized, and a message matching more than one alias must resolve to the
// same cabin on every run.
var cabinNameAliases = []struct {
	name    string
	cabinID string
}{
	{"מורן", "ZB03"},
	{"מורני", "ZB03"},
	{"יולי", "ZB01"},
	{"אמי", "ZB02"},
}

// extractCabinID recognizes a direct short code (ZB01, ZB02, ...) or one of
// the operator's name aliases, either bare or inside "צימר של <name>".
func extractCabinID(message string) string {
	if m := cabinCodePattern.FindStringSubmatch(message); m != nil {
		return strings.ToUpper(m[1])
	}

	messageLower := strings.ToLower(message)
	messageClean := punctuationPattern.ReplaceAllString(messageLower, " ")
	words := strings.Fields(messageClean)

	for _, alias := range cabinNameAliases {
		if containsWord(words, alias.name) ||
			strings.Contains(messageClean, fmt.Sprintf("צימר של %s", alias.name)) ||
			strings.Contains(messageClean, fmt.Sprintf("צימר %s", alias.name)) {
			return alias.cabinID
		}
	}
	return ""
}

func containsWord(words []string, target string) bool {
	for _, w := range words {
		if w == target {
			return true
		}
	}
	return false
}

var nameAfterAlShem = regexp.MustCompile(`על\s+שם\s+([\x{05D0}-\x{05EA}\s]+?)(?:\s|$|,|\.|-)`)
var nameAfterShem = regexp.MustCompile(`שם[:\s]+([\x{05D0}-\x{05EA}\s]+?)(?:\s|$|,|\.|-)`)
var nameAfterNameColon = regexp.MustCompile(`name[:\s]+([a-zA-Z\s]+?)(?:\s|$|,|\.|-)`)

// extractCustomerName tries "על שם X", then "שם: X", then "name: X", in
// that order, returning the first non-trivial match.
func extractCustomerName(message string) string {
	if m := nameAfterAlShem.FindStringSubmatch(message); m != nil {
		if name := strings.TrimSpace(m[1]); len(name) > 1 {
			return name
		}
	}
	if m := nameAfterShem.FindStringSubmatch(message); m != nil {
		if name := strings.TrimSpace(m[1]); len(name) > 1 {
			return name
		}
	}
	if m := nameAfterNameColon.FindStringSubmatch(strings.ToLower(message)); m != nil {
		if name := strings.TrimSpace(m[1]); len(name) > 1 {
			return name
		}
	}
	return ""
}
