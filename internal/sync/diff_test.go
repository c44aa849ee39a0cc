package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsEqual_Identical(t *testing.T) {
	a := Event{
		ID:          "t1",
		Summary:     "Chore Home Fix the fence",
		Description: "Status: Done\nPriority: low",
		Start:       EventTime{Date: "2024-10-15"},
		End:         EventTime{Date: "2024-10-15"},
		AllDay:      true,
	}
	assert.True(t, FieldsEqual(a, a))
}

func TestFieldsEqual_TimestampOffsetsCompareAsInstants(t *testing.T) {
	a := Event{Start: EventTime{DateTime: "2024-10-15T10:00:00Z"}, End: EventTime{DateTime: "2024-10-15T10:00:00Z"}}
	b := Event{Start: EventTime{DateTime: "2024-10-15T12:00:00+02:00"}, End: EventTime{DateTime: "2024-10-15T12:00:00+02:00"}}

	assert.True(t, FieldsEqual(a, b))
}

func TestFieldsEqual_EmptyValuesAreEquivalent(t *testing.T) {
	a := Event{Summary: "X", Location: ""}
	b := Event{Summary: "X"}
	assert.True(t, FieldsEqual(a, b))
}

func TestFieldsEqual_DetectsChanges(t *testing.T) {
	base := Event{
		Summary:     "Chore Fix the fence",
		Description: "Status: Done\nPriority: low",
		Location:    "Home",
		Start:       EventTime{Date: "2024-10-15"},
		End:         EventTime{Date: "2024-10-15"},
	}

	changed := base
	changed.Summary = "Chore Fix the gate"
	assert.False(t, FieldsEqual(base, changed))

	changed = base
	changed.Location = "Garden"
	assert.False(t, FieldsEqual(base, changed))

	changed = base
	changed.End = EventTime{Date: "2024-10-16"}
	assert.False(t, FieldsEqual(base, changed))
}

func TestFieldsEqual_AllDayVsTimedDiffer(t *testing.T) {
	a := Event{Start: EventTime{Date: "2024-10-15"}, End: EventTime{Date: "2024-10-15"}}
	b := Event{Start: EventTime{DateTime: "2024-10-15T00:00:00Z"}, End: EventTime{DateTime: "2024-10-15T00:00:00Z"}}

	assert.False(t, FieldsEqual(a, b))
}

func TestFieldsEqual_IgnoresID(t *testing.T) {
	// Field-level comparison only; identity fields play no role.
	a := Event{ID: "a", Summary: "X"}
	b := Event{ID: "b", Summary: "X"}
	assert.True(t, FieldsEqual(a, b))
}
