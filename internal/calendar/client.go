package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/tasksync/internal/sync"
)

// Client wraps the Google Calendar service for one calendar.
type Client struct {
	svc             *calendar.Service
	calendarID      string
	reminderMinutes int
}

// NewClient creates a Calendar client bound to the given calendar id
// using an authenticated HTTP client. Timed events are written with a
// single popup reminder reminderMinutes before the start; zero disables
// reminders.
func NewClient(ctx context.Context, httpClient *http.Client, calendarID string, reminderMinutes int) (*Client, error) {
	if calendarID == "" {
		calendarID = "primary"
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:             svc,
		calendarID:      calendarID,
		reminderMinutes: reminderMinutes,
	}, nil
}

// CalendarID returns the calendar this client operates on.
func (c *Client) CalendarID() string {
	return c.calendarID
}

// ListEvents returns all events starting at or after timeMin, following
// page tokens sequentially until the listing is exhausted.
func (c *Client) ListEvents(ctx context.Context, timeMin time.Time) ([]sync.Event, error) {
	var events []sync.Event
	pageToken := ""

	for {
		call := c.svc.Events.List(c.calendarID).
			TimeMin(timeMin.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return nil, classify("list events", err)
		}

		for _, item := range page.Items {
			events = append(events, toEvent(item))
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			return events, nil
		}
	}
}

// GetEvent retrieves a single event by id.
func (c *Client) GetEvent(ctx context.Context, id string) (sync.Event, error) {
	item, err := c.svc.Events.Get(c.calendarID, id).Context(ctx).Do()
	if err != nil {
		return sync.Event{}, classify("get event", err)
	}
	return toEvent(item), nil
}

// InsertEvent creates an event, asking the service to reuse ev.ID as the
// event id so that the task id stays the join key across both systems.
func (c *Client) InsertEvent(ctx context.Context, ev sync.Event) error {
	item := c.withReminders(fromEvent(ev))
	if _, err := c.svc.Events.Insert(c.calendarID, item).Context(ctx).Do(); err != nil {
		return classify("insert event", err)
	}
	return nil
}

// UpdateEvent replaces the synced fields of the event with id ev.ID.
func (c *Client) UpdateEvent(ctx context.Context, ev sync.Event) error {
	item := c.withReminders(fromEvent(ev))
	if _, err := c.svc.Events.Update(c.calendarID, ev.ID, item).Context(ctx).Do(); err != nil {
		return classify("update event", err)
	}
	return nil
}

// withReminders stamps the reminder policy onto an outgoing event. Synced
// events never inherit calendar default reminders; timed events get one
// popup at the configured lead time, all-day events stay silent.
func (c *Client) withReminders(item *calendar.Event) *calendar.Event {
	item.Reminders = &calendar.EventReminders{
		UseDefault:      false,
		ForceSendFields: []string{"UseDefault"},
	}
	if c.reminderMinutes > 0 && item.Start != nil && item.Start.DateTime != "" {
		item.Reminders.Overrides = []*calendar.EventReminder{
			{Method: "popup", Minutes: int64(c.reminderMinutes)},
		}
	}
	return item
}

// DeleteEvent removes an event by id. Callers treat a not-found as
// already satisfied via sync.IsNotFound.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	if err := c.svc.Events.Delete(c.calendarID, id).Context(ctx).Do(); err != nil {
		return classify("delete event", err)
	}
	return nil
}

// classify maps Google API status codes onto the sync package's sentinel
// errors so the engine can tell not-found and duplicate-id conflicts apart
// from transient failures.
func classify(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound, http.StatusGone:
			return fmt.Errorf("%s: %w: %v", op, sync.ErrNotFound, err)
		case http.StatusConflict:
			return fmt.Errorf("%s: %w: %v", op, sync.ErrConflict, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
