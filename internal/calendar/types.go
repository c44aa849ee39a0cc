package calendar

import (
	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/tasksync/internal/sync"
)

// toEvent converts a Google Calendar event to the engine's canonical form.
func toEvent(item *calendar.Event) sync.Event {
	if item == nil {
		return sync.Event{}
	}

	ev := sync.Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
	}

	ev.Start = toEventTime(item.Start)
	ev.End = toEventTime(item.End)
	ev.AllDay = ev.Start.Date != ""

	return ev
}

func toEventTime(edt *calendar.EventDateTime) sync.EventTime {
	if edt == nil {
		return sync.EventTime{}
	}
	if edt.Date != "" {
		return sync.EventTime{Date: edt.Date}
	}
	return sync.EventTime{DateTime: edt.DateTime}
}

// fromEvent converts a canonical event into the wire representation.
// All-day events carry Date bounds, timed events DateTime bounds in UTC.
func fromEvent(ev sync.Event) *calendar.Event {
	item := &calendar.Event{
		Id:          ev.ID,
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
	}

	if ev.AllDay {
		item.Start = &calendar.EventDateTime{Date: ev.Start.Date}
		item.End = &calendar.EventDateTime{Date: ev.End.Date}
	} else {
		item.Start = &calendar.EventDateTime{DateTime: ev.Start.DateTime, TimeZone: "UTC"}
		item.End = &calendar.EventDateTime{DateTime: ev.End.DateTime, TimeZone: "UTC"}
	}

	return item
}
