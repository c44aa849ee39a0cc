package calendar

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"github.com/teemow/tasksync/internal/sync"
)

func TestToEvent_Timed(t *testing.T) {
	item := &gcal.Event{
		Id:          "abc123",
		Summary:     "Chore Home Fix the fence",
		Description: "Status: Done\nPriority: low",
		Location:    "Back garden",
		Start:       &gcal.EventDateTime{DateTime: "2024-10-15T10:00:00Z", TimeZone: "UTC"},
		End:         &gcal.EventDateTime{DateTime: "2024-10-15T11:00:00Z", TimeZone: "UTC"},
	}

	ev := toEvent(item)
	assert.Equal(t, "abc123", ev.ID)
	assert.False(t, ev.AllDay)
	assert.Equal(t, "2024-10-15T10:00:00Z", ev.Start.DateTime)
	assert.Empty(t, ev.Start.Date)
}

func TestToEvent_AllDay(t *testing.T) {
	item := &gcal.Event{
		Id:    "abc123",
		Start: &gcal.EventDateTime{Date: "2024-10-15"},
		End:   &gcal.EventDateTime{Date: "2024-10-16"},
	}

	ev := toEvent(item)
	assert.True(t, ev.AllDay)
	assert.Equal(t, "2024-10-15", ev.Start.Date)
	assert.Equal(t, "2024-10-16", ev.End.Date)
}

func TestToEvent_Nil(t *testing.T) {
	ev := toEvent(nil)
	assert.Empty(t, ev.ID)
}

func TestFromEvent_RoundTrip(t *testing.T) {
	ev := sync.Event{
		ID:          "abc123",
		Summary:     "Call bank",
		Description: "Status: In progress\nPriority: high",
		Start:       sync.EventTime{DateTime: "2024-10-15T10:00:00Z"},
		End:         sync.EventTime{DateTime: "2024-10-15T10:00:00Z"},
	}

	item := fromEvent(ev)
	require.NotNil(t, item.Start)
	assert.Equal(t, "abc123", item.Id)
	assert.Equal(t, "2024-10-15T10:00:00Z", item.Start.DateTime)
	assert.Equal(t, "UTC", item.Start.TimeZone)
	assert.Empty(t, item.Start.Date)

	assert.Equal(t, ev, toEvent(item))
}

func TestFromEvent_AllDay(t *testing.T) {
	ev := sync.Event{
		ID:     "abc123",
		Start:  sync.EventTime{Date: "2024-10-15"},
		End:    sync.EventTime{Date: "2024-10-15"},
		AllDay: true,
	}

	item := fromEvent(ev)
	assert.Equal(t, "2024-10-15", item.Start.Date)
	assert.Empty(t, item.Start.DateTime)
}

func TestWithReminders(t *testing.T) {
	c := &Client{reminderMinutes: 10}

	timed := c.withReminders(fromEvent(sync.Event{
		ID:    "abc123",
		Start: sync.EventTime{DateTime: "2024-10-15T10:00:00Z"},
		End:   sync.EventTime{DateTime: "2024-10-15T10:00:00Z"},
	}))
	require.NotNil(t, timed.Reminders)
	assert.False(t, timed.Reminders.UseDefault)
	require.Len(t, timed.Reminders.Overrides, 1)
	assert.Equal(t, "popup", timed.Reminders.Overrides[0].Method)
	assert.Equal(t, int64(10), timed.Reminders.Overrides[0].Minutes)

	allDay := c.withReminders(fromEvent(sync.Event{
		ID:     "abc123",
		Start:  sync.EventTime{Date: "2024-10-15"},
		End:    sync.EventTime{Date: "2024-10-15"},
		AllDay: true,
	}))
	require.NotNil(t, allDay.Reminders)
	assert.False(t, allDay.Reminders.UseDefault)
	assert.Empty(t, allDay.Reminders.Overrides)

	disabled := &Client{reminderMinutes: 0}
	timed = disabled.withReminders(fromEvent(sync.Event{
		ID:    "abc123",
		Start: sync.EventTime{DateTime: "2024-10-15T10:00:00Z"},
		End:   sync.EventTime{DateTime: "2024-10-15T10:00:00Z"},
	}))
	assert.Empty(t, timed.Reminders.Overrides)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		conflict bool
		notFound bool
	}{
		{"not found", http.StatusNotFound, false, true},
		{"gone", http.StatusGone, false, true},
		{"conflict", http.StatusConflict, true, false},
		{"server error", http.StatusInternalServerError, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("delete event", &googleapi.Error{Code: tt.code})
			require.Error(t, err)
			assert.Equal(t, tt.conflict, sync.IsConflict(err))
			assert.Equal(t, tt.notFound, sync.IsNotFound(err))
		})
	}
}
