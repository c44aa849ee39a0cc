package sync

import "time"

// FieldsEqual compares only the synced fields of two events: summary,
// description, location, start and end. Empty strings and absent values
// compare as equivalent, and timestamps compare as instants so that
// "2024-10-15T10:00:00Z" and "2024-10-15T12:00:00+02:00" do not produce a
// spurious update.
func FieldsEqual(a, b Event) bool {
	if a.Summary != b.Summary {
		return false
	}
	if a.Description != b.Description {
		return false
	}
	if a.Location != b.Location {
		return false
	}
	return timesEqual(a.Start, b.Start) && timesEqual(a.End, b.End)
}

func timesEqual(a, b EventTime) bool {
	if a.Date != "" || b.Date != "" {
		return a.Date == b.Date && a.DateTime == "" && b.DateTime == ""
	}
	if a.DateTime == "" && b.DateTime == "" {
		return true
	}
	at, errA := time.Parse(time.RFC3339, a.DateTime)
	bt, errB := time.Parse(time.RFC3339, b.DateTime)
	if errA != nil || errB != nil {
		// Unparseable on either side: fall back to literal comparison.
		return a.DateTime == b.DateTime
	}
	return at.Equal(bt)
}
