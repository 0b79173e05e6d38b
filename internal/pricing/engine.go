// internal/pricing/engine.go
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"cabinreserve/internal/models"
)

// Addon is an optional extra (extra bed, early check-in, ...) priced as a
// single flat amount added to the subtotal before discounts.
type Addon struct {
	Name  string
	Price decimal.Decimal
}

// NightBreakdown is the per-night line in a PriceBreakdown.
type NightBreakdown struct {
	Date         time.Time       `json:"date"`
	IsWeekend    bool            `json:"is_weekend"`
	IsHoliday    bool            `json:"is_holiday"`
	IsHighSeason bool            `json:"is_high_season"`
	Price        decimal.Decimal `json:"price"`
}

// Discount describes the long-stay discount applied, if any.
type Discount struct {
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
	Reason  string          `json:"reason,omitempty"`
}

// PriceBreakdown is the deterministic output of Engine.CalculateBreakdown.
type PriceBreakdown struct {
	Nights               int              `json:"nights"`
	RegularNights        int              `json:"regular_nights"`
	WeekendNights        int              `json:"weekend_nights"`
	HolidayNights        int              `json:"holiday_nights"`
	HighSeasonNights     int              `json:"high_season_nights"`
	BaseTotal            decimal.Decimal  `json:"base_total"`
	WeekendSurcharge     decimal.Decimal  `json:"weekend_surcharge"`
	HolidaySurcharge     decimal.Decimal  `json:"holiday_surcharge"`
	HighSeasonSurcharge  decimal.Decimal  `json:"high_season_surcharge"`
	AddonsTotal          decimal.Decimal  `json:"addons_total"`
	Addons               []Addon          `json:"addons"`
	Subtotal             decimal.Decimal  `json:"subtotal"`
	Discount             Discount         `json:"discount"`
	Total                decimal.Decimal  `json:"total"`
	Breakdown            []NightBreakdown `json:"breakdown"`
}

// Engine computes deterministic price breakdowns for a stay, applying
// weekend/holiday/season surcharges and long-stay discounts. All dates are
// interpreted as calendar dates in the business timezone; callers must
// normalize before invoking CalculateBreakdown.
type Engine struct {
	HolidayDates        map[string]bool
	HighSeasonMonths    map[time.Month]bool
	HolidaySeasonMonths map[time.Month]bool
}

// NewEngine builds an Engine from configured holiday dates (YYYY-MM-DD) and
// season month lists, falling back to the defaults baked into the original
// implementation when the configured lists are empty.
func NewEngine(holidayDates []string, highSeasonMonths, holidaySeasonMonths []int) *Engine {
	e := &Engine{
		HolidayDates:        make(map[string]bool, len(holidayDates)),
		HighSeasonMonths:    make(map[time.Month]bool),
		HolidaySeasonMonths: make(map[time.Month]bool),
	}
	for _, d := range holidayDates {
		e.HolidayDates[d] = true
	}

	if len(highSeasonMonths) == 0 {
		highSeasonMonths = []int{7, 8}
	}
	for _, m := range highSeasonMonths {
		e.HighSeasonMonths[time.Month(m)] = true
	}

	if len(holidaySeasonMonths) == 0 {
		holidaySeasonMonths = []int{4, 9, 10}
	}
	for _, m := range holidaySeasonMonths {
		e.HolidaySeasonMonths[time.Month(m)] = true
	}

	return e
}

func (e *Engine) isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Friday || wd == time.Saturday
}

func (e *Engine) isHoliday(d time.Time) bool {
	return e.HolidayDates[d.Format("2006-01-02")]
}

func (e *Engine) isHighSeason(d time.Time) bool {
	return e.HighSeasonMonths[d.Month()]
}

func (e *Engine) isHolidaySeason(d time.Time) bool {
	return e.HolidaySeasonMonths[d.Month()]
}

var (
	half      = decimal.NewFromFloat(0.5)
	pointTwo  = decimal.NewFromFloat(0.2)
	pointThree = decimal.NewFromFloat(0.3)
)

// CalculateBreakdown computes the full per-night and aggregate price for a
// stay in [checkIn, checkOut). Returns a zeroed breakdown if checkOut is not
// after checkIn.
func (e *Engine) CalculateBreakdown(cabin *models.Cabin, checkIn, checkOut time.Time, addons []Addon, applyDiscounts bool) PriceBreakdown {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 0 {
		nights = 0
	}

	result := PriceBreakdown{
		Addons: addons,
	}

	if nights == 0 {
		result.BaseTotal = decimal.Zero
		result.WeekendSurcharge = decimal.Zero
		result.HolidaySurcharge = decimal.Zero
		result.HighSeasonSurcharge = decimal.Zero
		result.AddonsTotal = decimal.Zero
		result.Subtotal = decimal.Zero
		result.Total = decimal.Zero
		result.Discount = Discount{Percent: decimal.Zero, Amount: decimal.Zero}
		return result
	}

	basePriceNight := cabin.BasePricePerNight
	weekendPriceNight := cabin.WeekendPricePerNight
	if weekendPriceNight.LessThanOrEqual(decimal.Zero) {
		weekendPriceNight = basePriceNight
	}

	var baseTotal, weekendSurcharge, holidaySurcharge, highSeasonSurcharge decimal.Decimal

	breakdown := make([]NightBreakdown, 0, nights)

	for i := 0; i < nights; i++ {
		d := checkIn.AddDate(0, 0, i)

		isWeekend := e.isWeekend(d)
		isHoliday := e.isHoliday(d)
		isHighSeason := e.isHighSeason(d)
		isHolidaySeason := e.isHolidaySeason(d)

		dayPrice := basePriceNight

		if isWeekend {
			result.WeekendNights++
			if weekendPriceNight.GreaterThan(basePriceNight) {
				surcharge := weekendPriceNight.Sub(basePriceNight)
				weekendSurcharge = weekendSurcharge.Add(surcharge)
				dayPrice = weekendPriceNight
			}
		} else {
			result.RegularNights++
		}

		if isHoliday {
			result.HolidayNights++
			amount := basePriceNight.Mul(half)
			holidaySurcharge = holidaySurcharge.Add(amount)
			dayPrice = dayPrice.Add(amount)
		}

		if isHighSeason && !isHoliday {
			result.HighSeasonNights++
			amount := basePriceNight.Mul(pointTwo)
			highSeasonSurcharge = highSeasonSurcharge.Add(amount)
			dayPrice = dayPrice.Add(amount)
		} else if isHolidaySeason && !isHoliday && !isHighSeason {
			amount := basePriceNight.Mul(pointThree)
			highSeasonSurcharge = highSeasonSurcharge.Add(amount)
			dayPrice = dayPrice.Add(amount)
		}

		baseTotal = baseTotal.Add(dayPrice)

		breakdown = append(breakdown, NightBreakdown{
			Date:         d,
			IsWeekend:    isWeekend,
			IsHoliday:    isHoliday,
			IsHighSeason: isHighSeason,
			Price:        dayPrice.Round(2),
		})
	}

	var addonsTotal decimal.Decimal
	for _, a := range addons {
		addonsTotal = addonsTotal.Add(a.Price)
	}

	subtotal := baseTotal.Add(addonsTotal)

	discount := Discount{Percent: decimal.Zero, Amount: decimal.Zero}
	if applyDiscounts {
		discount = calculateDiscount(nights, subtotal)
	}

	total := subtotal.Sub(discount.Amount).Round(2)

	result.Nights = nights
	result.BaseTotal = baseTotal.Round(2)
	result.WeekendSurcharge = weekendSurcharge.Round(2)
	result.HolidaySurcharge = holidaySurcharge.Round(2)
	result.HighSeasonSurcharge = highSeasonSurcharge.Round(2)
	result.AddonsTotal = addonsTotal.Round(2)
	result.Subtotal = subtotal.Round(2)
	result.Discount = discount
	result.Total = total
	result.Breakdown = breakdown

	return result
}

// calculateDiscount applies the long-stay discount tiers: 5% at 4 nights,
// 10% at 7, 12% at 14, 15% at 30.
func calculateDiscount(nights int, subtotal decimal.Decimal) Discount {
	var percent decimal.Decimal
	var reason string

	switch {
	case nights >= 30:
		percent = decimal.NewFromInt(15)
		reason = "long-stay discount (month)"
	case nights >= 14:
		percent = decimal.NewFromInt(12)
		reason = "long-stay discount (two weeks)"
	case nights >= 7:
		percent = decimal.NewFromInt(10)
		reason = "long-stay discount (week)"
	case nights >= 4:
		percent = decimal.NewFromInt(5)
		reason = "long-stay discount (4+ nights)"
	default:
		return Discount{Percent: decimal.Zero, Amount: decimal.Zero}
	}

	amount := subtotal.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
	return Discount{Percent: percent, Amount: amount, Reason: reason}
}
