// internal/calendar/gateway.go
package calendar

import (
	"context"
	"time"
)

// Event is a single busy interval on a cabin's external calendar, normalized
// to a half-open UTC interval regardless of whether the provider represented
// it as timed or all-day.
type Event struct {
	Ref       string    `json:"ref"`
	CabinID   string    `json:"cabin_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Summary   string    `json:"summary,omitempty"`
	Cancelled bool      `json:"cancelled,omitempty"`
}

// Overlaps reports whether the event's half-open interval intersects
// [start, end). A cancelled event never occupies its interval.
func (e Event) Overlaps(start, end time.Time) bool {
	if e.Cancelled {
		return false
	}
	return e.Start.Before(end) && start.Before(e.End)
}

// Gateway is the boundary between the coordination engine and the external
// per-cabin calendar provider. Implementations must normalize every event to
// a half-open UTC interval before returning it; ordering of the returned
// slice is never guaranteed.
type Gateway interface {
	ListEvents(ctx context.Context, calendarRef string, timeMin, timeMax time.Time) ([]Event, error)
	InsertEvent(ctx context.Context, calendarRef string, start, end time.Time, summary string) (Event, error)
	DeleteEvent(ctx context.Context, calendarRef string, eventRef string) error
}
