// internal/calendar/retry.go
package calendar

import (
	"context"
	"errors"
	"time"

	"cabinreserve/internal/apierr"
)

// RetryingGateway wraps a Gateway and retries only ErrCalendarUnreachable,
// up to MaxRetries times after the first attempt, sleeping Backoff×n before
// the n-th retry (a linearly growing backoff). CalendarForbidden and CalendarNotFound are
// never retried — they are surfaced or logged immediately by the caller.
type RetryingGateway struct {
	Inner      Gateway
	MaxRetries int
	Backoff    time.Duration
}

func NewRetryingGateway(inner Gateway) *RetryingGateway {
	return &RetryingGateway{
		Inner:      inner,
		MaxRetries: 2,
		Backoff:    200 * time.Millisecond,
	}
}

func (g *RetryingGateway) withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt <= g.MaxRetries; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, apierr.ErrCalendarUnreachable) {
			return err
		}
		if attempt < g.MaxRetries {
			time.Sleep(g.Backoff * time.Duration(attempt+1))
		}
	}
	return err
}

func (g *RetryingGateway) ListEvents(ctx context.Context, calendarRef string, timeMin, timeMax time.Time) ([]Event, error) {
	var events []Event
	err := g.withRetry(func() error {
		var innerErr error
		events, innerErr = g.Inner.ListEvents(ctx, calendarRef, timeMin, timeMax)
		return innerErr
	})
	return events, err
}

func (g *RetryingGateway) InsertEvent(ctx context.Context, calendarRef string, start, end time.Time, summary string) (Event, error) {
	var event Event
	err := g.withRetry(func() error {
		var innerErr error
		event, innerErr = g.Inner.InsertEvent(ctx, calendarRef, start, end, summary)
		return innerErr
	})
	return event, err
}

func (g *RetryingGateway) DeleteEvent(ctx context.Context, calendarRef string, eventRef string) error {
	return g.withRetry(func() error {
		return g.Inner.DeleteEvent(ctx, calendarRef, eventRef)
	})
}
