package sync

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// timeOfDayPattern detects a clock component in a raw date string. The
// decision has to happen on the raw text: once parsed, "2024-10-15" and
// "2024-10-15T00:00:00" are the same instant.
var timeOfDayPattern = regexp.MustCompile(`\d{2}:\d{2}(:\d{2})?`)

// dateLayouts are tried in order when parsing raw task-store dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses a raw task-store date string. Timestamps without an
// offset are taken as UTC.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// HasTimeOfDay reports whether a raw date string carries a clock component.
func HasTimeOfDay(raw string) bool {
	return timeOfDayPattern.MatchString(raw)
}

// Project maps a task onto its canonical calendar event. Tasks without a
// start date return ErrNoDate; callers skip those rather than failing the
// run.
//
// If either date string carries a time of day the event is timed and both
// bounds become RFC 3339 UTC timestamps; otherwise the event is all-day
// and both bounds are plain calendar dates. A missing end defaults to the
// start in either mode.
func Project(t Task) (Event, error) {
	if t.DateStart == "" {
		return Event{}, fmt.Errorf("task %s: %w", t.ID, ErrNoDate)
	}

	ev := Event{
		ID:          t.ID,
		Summary:     buildSummary(t),
		Description: buildDescription(t),
		Location:    t.Location,
	}

	start, err := ParseDate(t.DateStart)
	if err != nil {
		return Event{}, fmt.Errorf("task %s: start: %w", t.ID, err)
	}

	timed := HasTimeOfDay(t.DateStart) || (t.DateEnd != "" && HasTimeOfDay(t.DateEnd))
	if timed {
		ev.Start = EventTime{DateTime: start.UTC().Format(time.RFC3339)}
		ev.End = ev.Start
		if t.DateEnd != "" {
			end, err := ParseDate(t.DateEnd)
			if err != nil {
				return Event{}, fmt.Errorf("task %s: end: %w", t.ID, err)
			}
			ev.End = EventTime{DateTime: end.UTC().Format(time.RFC3339)}
		}
		return ev, nil
	}

	ev.AllDay = true
	ev.Start = EventTime{Date: start.Format("2006-01-02")}
	ev.End = ev.Start
	if t.DateEnd != "" {
		end, err := ParseDate(t.DateEnd)
		if err != nil {
			return Event{}, fmt.Errorf("task %s: end: %w", t.ID, err)
		}
		ev.End = EventTime{Date: end.Format("2006-01-02")}
	}
	return ev, nil
}

// buildSummary joins the non-empty of [type, category, title] with single
// spaces.
func buildSummary(t Task) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{t.Type, t.Category, t.Title} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func buildDescription(t Task) string {
	desc := fmt.Sprintf("Status: %s\nPriority: %s", t.Status, t.Priority)
	if t.Description != "" {
		desc += "\n" + t.Description
	}
	return desc
}
