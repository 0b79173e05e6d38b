// internal/availability/resolver.go
package availability

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"cabinreserve/internal/calendar"
	"cabinreserve/internal/models"
)

// SearchCriteria narrows the cabin catalog before the per-cabin calendar
// conflict check runs.
type SearchCriteria struct {
	CheckInUTC     time.Time
	CheckOutUTC    time.Time
	Adults         int
	Kids           int
	Area           string
	WantedFeatures []string
}

// Resolver answers "which cabins are actually free" by combining the
// relational catalog with per-cabin calendar state. It never consults the
// hold store — holds are resolved at commit time so that search results can
// still surface cabins that are currently on hold.
type Resolver struct {
	Calendar calendar.Gateway
}

func NewResolver(gw calendar.Gateway) *Resolver {
	return &Resolver{Calendar: gw}
}

func (r *Resolver) passesFilters(cabin *models.Cabin, criteria SearchCriteria) bool {
	if cabin.CalendarRef == "" {
		return false
	}
	if criteria.Adults > cabin.MaxAdults || criteria.Kids > cabin.MaxKids {
		return false
	}
	if criteria.Area != "" && !strings.EqualFold(strings.TrimSpace(criteria.Area), strings.TrimSpace(cabin.Area)) {
		return false
	}
	for _, wanted := range criteria.WantedFeatures {
		if !cabin.HasFeature(wanted) {
			return false
		}
	}
	return true
}

// Search returns the subset of cabins that satisfy capacity/area/feature
// filters and have no conflicting calendar event in
// [criteria.CheckInUTC, criteria.CheckOutUTC). Per-cabin calendar errors are
// logged and the cabin excluded rather than failing the whole search.
func (r *Resolver) Search(ctx context.Context, cabins []*models.Cabin, criteria SearchCriteria) []*models.Cabin {
	candidates := make([]*models.Cabin, 0, len(cabins))
	for _, cabin := range cabins {
		if r.passesFilters(cabin, criteria) {
			candidates = append(candidates, cabin)
		}
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	free := make([]*models.Cabin, 0, len(candidates))

	for _, cabin := range candidates {
		wg.Add(1)
		go func(c *models.Cabin) {
			defer wg.Done()

			events, err := r.Calendar.ListEvents(ctx, c.CalendarRef, criteria.CheckInUTC, criteria.CheckOutUTC)
			if err != nil {
				slog.Warn("calendar lookup failed, excluding cabin from search", "cabin_id", c.ID, "calendar_ref", c.CalendarRef, "error", err)
				return
			}

			for _, ev := range events {
				if ev.Overlaps(criteria.CheckInUTC, criteria.CheckOutUTC) {
					return
				}
			}

			mu.Lock()
			free = append(free, c)
			mu.Unlock()
		}(cabin)
	}
	wg.Wait()

	return free
}

// FreeDay is a single calendar day and whether it is entirely unoccupied.
type FreeDay struct {
	Date time.Time
	Free bool
}

// MonthFreeDays walks every day in [monthStart, monthEnd) and reports which
// are entirely free of any calendar event for the given cabin. The cabin
// calendar HTTP handler calls it; the agent does not, and answers a
// whole-month availability question with one Search over the month, which
// lists only the cabins free on every day of it.
func (r *Resolver) MonthFreeDays(ctx context.Context, cabin *models.Cabin, monthStart, monthEnd time.Time) ([]FreeDay, error) {
	events, err := r.Calendar.ListEvents(ctx, cabin.CalendarRef, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	var days []FreeDay
	for d := monthStart; d.Before(monthEnd); d = d.AddDate(0, 0, 1) {
		dayEnd := d.AddDate(0, 0, 1)
		free := true
		for _, ev := range events {
			if ev.Overlaps(d, dayEnd) {
				free = false
				break
			}
		}
		days = append(days, FreeDay{Date: d, Free: free})
	}
	return days, nil
}
