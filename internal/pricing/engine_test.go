package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabinreserve/internal/models"
)

func newTestCabin(base, weekend string) *models.Cabin {
	return &models.Cabin{
		BasePricePerNight:    decimal.RequireFromString(base),
		WeekendPricePerNight: decimal.RequireFromString(weekend),
	}
}

func TestCalculateBreakdown_ZeroNights(t *testing.T) {
	e := NewEngine(nil, nil, nil)
	cabin := newTestCabin("500", "650")

	d := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	result := e.CalculateBreakdown(cabin, d, d, nil, true)

	assert.Equal(t, 0, result.Nights)
	assert.True(t, result.Total.Equal(decimal.Zero))
}

func TestCalculateBreakdown_WeekendSurcharge(t *testing.T) {
	e := NewEngine(nil, nil, nil)
	cabin := newTestCabin("500", "650")

	// 2026-06-05 is a Friday.
	checkIn := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC)

	result := e.CalculateBreakdown(cabin, checkIn, checkOut, nil, false)

	require.Equal(t, 2, result.Nights)
	assert.Equal(t, 2, result.WeekendNights)
	assert.True(t, result.BaseTotal.Equal(decimal.RequireFromString("1300")))
}

func TestCalculateBreakdown_HighSeasonSurcharge(t *testing.T) {
	e := NewEngine(nil, []int{7, 8}, []int{4, 9, 10})
	cabin := newTestCabin("1000", "1000")

	// 2026-07-06 is a Monday, not a weekend, July = high season.
	checkIn := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 7, 7, 0, 0, 0, 0, time.UTC)

	result := e.CalculateBreakdown(cabin, checkIn, checkOut, nil, false)

	require.Equal(t, 1, result.Nights)
	assert.Equal(t, 1, result.HighSeasonNights)
	assert.True(t, result.BaseTotal.Equal(decimal.RequireFromString("1200")))
}

func TestCalculateBreakdown_HolidayOverridesSeason(t *testing.T) {
	e := NewEngine([]string{"2026-07-10"}, []int{7, 8}, []int{4, 9, 10})
	cabin := newTestCabin("1000", "1000")

	checkIn := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 7, 11, 0, 0, 0, 0, time.UTC)

	result := e.CalculateBreakdown(cabin, checkIn, checkOut, nil, false)

	require.Equal(t, 1, result.Nights)
	assert.Equal(t, 1, result.HolidayNights)
	assert.Equal(t, 0, result.HighSeasonNights)
	// 1000 base + 500 holiday surcharge, no additional high-season surcharge.
	assert.True(t, result.BaseTotal.Equal(decimal.RequireFromString("1500")))
}

func TestCalculateBreakdown_LongStayDiscount(t *testing.T) {
	e := NewEngine(nil, nil, nil)
	cabin := newTestCabin("1000", "1000")

	checkIn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 7)

	result := e.CalculateBreakdown(cabin, checkIn, checkOut, nil, true)

	require.Equal(t, 7, result.Nights)
	assert.True(t, result.Discount.Percent.Equal(decimal.NewFromInt(10)))
	assert.True(t, result.Total.LessThan(result.Subtotal))
}

func TestCalculateBreakdown_AddonsIncludedBeforeDiscount(t *testing.T) {
	e := NewEngine(nil, nil, nil)
	cabin := newTestCabin("1000", "1000")

	checkIn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 2)

	addons := []Addon{{Name: "extra bed", Price: decimal.RequireFromString("100")}}
	result := e.CalculateBreakdown(cabin, checkIn, checkOut, addons, false)

	assert.True(t, result.AddonsTotal.Equal(decimal.RequireFromString("100")))
	assert.True(t, result.Subtotal.Equal(result.BaseTotal.Add(result.AddonsTotal)))
}
