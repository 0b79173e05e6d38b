package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabinreserve/internal/calendar"
	"cabinreserve/internal/models"
)

func TestResolver_Search_FiltersByCapacityAndCalendar(t *testing.T) {
	gw := calendar.NewFakeGateway()
	ctx := context.Background()

	small := &models.Cabin{CalendarRef: "small", MaxAdults: 2, MaxKids: 0, Area: "North"}
	big := &models.Cabin{CalendarRef: "big", MaxAdults: 6, MaxKids: 4, Area: "North"}

	checkIn := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC)

	_, err := gw.InsertEvent(ctx, "big", checkIn, checkOut, "existing booking")
	require.NoError(t, err)

	resolver := NewResolver(gw)
	criteria := SearchCriteria{
		CheckInUTC:  checkIn,
		CheckOutUTC: checkOut,
		Adults:      4,
	}

	results := resolver.Search(ctx, []*models.Cabin{small, big}, criteria)

	require.Len(t, results, 0) // small excluded by capacity, big excluded by calendar conflict
	assert.Empty(t, results)
}

func TestResolver_Search_ReturnsFreeCabin(t *testing.T) {
	gw := calendar.NewFakeGateway()
	ctx := context.Background()

	cabin := &models.Cabin{CalendarRef: "free-cabin", MaxAdults: 4, MaxKids: 2, Area: "South"}

	checkIn := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC)

	resolver := NewResolver(gw)
	criteria := SearchCriteria{CheckInUTC: checkIn, CheckOutUTC: checkOut, Adults: 2}

	results := resolver.Search(ctx, []*models.Cabin{cabin}, criteria)
	require.Len(t, results, 1)
	assert.Equal(t, "free-cabin", results[0].CalendarRef)
}

func TestResolver_Search_FeatureFilter(t *testing.T) {
	gw := calendar.NewFakeGateway()
	ctx := context.Background()

	cabin := &models.Cabin{CalendarRef: "jacuzzi-cabin", MaxAdults: 4}
	cabin.SetFeatureSet(map[string]bool{"jacuzzi": true, "fireplace": true})

	checkIn := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC)

	resolver := NewResolver(gw)

	withMatch := resolver.Search(ctx, []*models.Cabin{cabin}, SearchCriteria{
		CheckInUTC: checkIn, CheckOutUTC: checkOut, WantedFeatures: []string{"jacuzzi"},
	})
	assert.Len(t, withMatch, 1)

	withoutMatch := resolver.Search(ctx, []*models.Cabin{cabin}, SearchCriteria{
		CheckInUTC: checkIn, CheckOutUTC: checkOut, WantedFeatures: []string{"sauna"},
	})
	assert.Empty(t, withoutMatch)
}

func TestResolver_MonthFreeDays(t *testing.T) {
	gw := calendar.NewFakeGateway()
	ctx := context.Background()

	cabin := &models.Cabin{CalendarRef: "month-cabin"}

	monthStart := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	busyStart := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	busyEnd := time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC)
	_, err := gw.InsertEvent(ctx, "month-cabin", busyStart, busyEnd, "booked")
	require.NoError(t, err)

	resolver := NewResolver(gw)
	days, err := resolver.MonthFreeDays(ctx, cabin, monthStart, monthEnd)
	require.NoError(t, err)
	require.Len(t, days, 31)

	for _, day := range days {
		if !day.Date.Before(busyStart) && day.Date.Before(busyEnd) {
			assert.False(t, day.Free, day.Date.String())
		} else {
			assert.True(t, day.Free, day.Date.String())
		}
	}
}
