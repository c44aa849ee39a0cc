package sync

import "time"

// DefaultArchiveAfter is how long a task must have been done before its
// event is retired.
const DefaultArchiveAfter = 3 * 24 * time.Hour

// archiveDue reports whether a task qualifies for archival: status Done
// and its end date (or start date when no end is set) at least `after`
// in the past. Tasks without a parseable date never qualify.
func archiveDue(t Task, now time.Time, after time.Duration) bool {
	if t.Status != StatusDone {
		return false
	}
	raw := t.DateEnd
	if raw == "" {
		raw = t.DateStart
	}
	if raw == "" {
		return false
	}
	ts, err := ParseDate(raw)
	if err != nil {
		return false
	}
	return now.Sub(ts) >= after
}
