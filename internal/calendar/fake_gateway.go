// internal/calendar/fake_gateway.go
package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FakeGateway is an in-memory Gateway used by tests that exercise the
// availability resolver and booking committer without a network dependency.
type FakeGateway struct {
	mu     sync.Mutex
	events map[string][]Event
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{events: make(map[string][]Event)}
}

func (g *FakeGateway) ListEvents(ctx context.Context, calendarRef string, timeMin, timeMax time.Time) ([]Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []Event
	for _, ev := range g.events[calendarRef] {
		if ev.Overlaps(timeMin, timeMax) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (g *FakeGateway) InsertEvent(ctx context.Context, calendarRef string, start, end time.Time, summary string) (Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ev := Event{
		Ref:     uuid.New().String(),
		CabinID: calendarRef,
		Start:   start.UTC(),
		End:     end.UTC(),
		Summary: summary,
	}
	g.events[calendarRef] = append(g.events[calendarRef], ev)
	return ev, nil
}

func (g *FakeGateway) DeleteEvent(ctx context.Context, calendarRef string, eventRef string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	existing := g.events[calendarRef]
	for i, ev := range existing {
		if ev.Ref == eventRef {
			g.events[calendarRef] = append(existing[:i], existing[i+1:]...)
			return nil
		}
	}
	return nil
}
