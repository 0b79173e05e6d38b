// internal/calendar/http_gateway.go
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cabinreserve/internal/apierr"
)

// HTTPGateway calls a REST-fronted calendar provider over plain net/http.
// There is no official client for this provider, so it speaks the REST
// contract directly rather than wrapping a generated SDK.
type HTTPGateway struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type wireEvent struct {
	Ref       string `json:"ref"`
	Summary   string `json:"summary"`
	Start     string `json:"start"`
	End       string `json:"end"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

// toEvent normalizes a wire event (timed or all-day) to a half-open UTC
// interval. An all-day event's end date is already exclusive of the last
// occupied day per the provider's convention.
func (w wireEvent) toEvent(cabinID string) (Event, error) {
	var start, end time.Time
	var err error

	if w.Start != "" && w.End != "" {
		start, err = time.Parse(time.RFC3339, w.Start)
		if err != nil {
			return Event{}, fmt.Errorf("parsing event start: %w", err)
		}
		end, err = time.Parse(time.RFC3339, w.End)
		if err != nil {
			return Event{}, fmt.Errorf("parsing event end: %w", err)
		}
	} else {
		start, err = time.Parse("2006-01-02", w.StartDate)
		if err != nil {
			return Event{}, fmt.Errorf("parsing event start date: %w", err)
		}
		end, err = time.Parse("2006-01-02", w.EndDate)
		if err != nil {
			return Event{}, fmt.Errorf("parsing event end date: %w", err)
		}
	}

	return Event{
		Ref:       w.Ref,
		CabinID:   cabinID,
		Start:     start.UTC(),
		End:       end.UTC(),
		Summary:   w.Summary,
		Cancelled: strings.EqualFold(w.Status, "cancelled"),
	}, nil
}

func (g *HTTPGateway) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return apierr.ErrCalendarUnreachable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierr.ErrCalendarUnreachable
	}

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return apierr.ErrCalendarForbidden
	case resp.StatusCode == http.StatusNotFound:
		return apierr.ErrCalendarNotFound
	case resp.StatusCode >= 500:
		return apierr.ErrCalendarUnreachable
	case resp.StatusCode >= 400:
		return fmt.Errorf("calendar provider rejected request: %s", string(respBody))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding calendar response: %w", err)
	}
	return nil
}

func (g *HTTPGateway) ListEvents(ctx context.Context, calendarRef string, timeMin, timeMax time.Time) ([]Event, error) {
	path := fmt.Sprintf("/calendars/%s/events?timeMin=%s&timeMax=%s",
		calendarRef,
		timeMin.UTC().Format(time.RFC3339),
		timeMax.UTC().Format(time.RFC3339),
	)

	var wire []wireEvent
	if err := g.doJSON(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(wire))
	for _, w := range wire {
		ev, err := w.toEvent(calendarRef)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (g *HTTPGateway) InsertEvent(ctx context.Context, calendarRef string, start, end time.Time, summary string) (Event, error) {
	path := fmt.Sprintf("/calendars/%s/events", calendarRef)
	reqBody := wireEvent{
		Summary: summary,
		Start:   start.UTC().Format(time.RFC3339),
		End:     end.UTC().Format(time.RFC3339),
	}

	var wire wireEvent
	if err := g.doJSON(ctx, http.MethodPost, path, reqBody, &wire); err != nil {
		return Event{}, err
	}
	return wire.toEvent(calendarRef)
}

func (g *HTTPGateway) DeleteEvent(ctx context.Context, calendarRef string, eventRef string) error {
	path := fmt.Sprintf("/calendars/%s/events/%s", calendarRef, eventRef)
	return g.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
