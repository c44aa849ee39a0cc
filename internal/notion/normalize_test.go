package notion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/tasksync/internal/config"
	"github.com/teemow/tasksync/internal/sync"
)

func testNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	defaults := config.Default().Notion
	n, err := NewNormalizer(defaults.Properties, defaults.Statuses)
	require.NoError(t, err)
	return n
}

func page(props map[string]Property) Page {
	return Page{
		ID:         "1f2e3d4c-5b6a-7788-99aa-bbccddeeff00",
		Properties: props,
	}
}

func TestNormalizeID_StripsHyphens(t *testing.T) {
	assert.Equal(t,
		"1f2e3d4c5b6a778899aabbccddeeff00",
		NormalizeID("1f2e3d4c-5b6a-7788-99aa-bbccddeeff00"))
}

func TestTask_FullRecord(t *testing.T) {
	n := testNormalizer(t)

	task, err := n.Task(page(map[string]Property{
		"Name":        {Type: "title", Title: []RichText{{PlainText: "Fix the "}, {PlainText: "fence"}}},
		"Status":      {Type: "status", Status: &SelectOption{Name: "In progress"}},
		"Date":        {Type: "date", Date: &DateValue{Start: "2024-10-15T10:00:00", End: "2024-10-15T11:00:00"}},
		"Category":    {Type: "select", Select: &SelectOption{Name: "Home"}},
		"Type":        {Type: "select", Select: &SelectOption{Name: "Chore"}},
		"Priority":    {Type: "select", Select: &SelectOption{Name: "High"}},
		"Description": {Type: "rich_text", RichText: []RichText{{PlainText: "Use the good nails"}}},
		"Location":    {Type: "rich_text", RichText: []RichText{{PlainText: "Back garden"}}},
	}))
	require.NoError(t, err)

	assert.Equal(t, "1f2e3d4c5b6a778899aabbccddeeff00", task.ID)
	assert.Equal(t, "Fix the fence", task.Title)
	assert.Equal(t, sync.StatusInProgress, task.Status)
	assert.Equal(t, "2024-10-15T10:00:00", task.DateStart)
	assert.Equal(t, "2024-10-15T11:00:00", task.DateEnd)
	assert.Equal(t, "Home", task.Category)
	assert.Equal(t, "Chore", task.Type)
	assert.Equal(t, "high", task.Priority, "priority is lower-cased")
	assert.Equal(t, "Use the good nails", task.Description)
	assert.Equal(t, "Back garden", task.Location)
}

func TestTask_MissingOptionalPropertiesNormalizeToEmpty(t *testing.T) {
	n := testNormalizer(t)

	task, err := n.Task(page(map[string]Property{
		"Name":   {Type: "title", Title: []RichText{{PlainText: "Minimal"}}},
		"Status": {Type: "status", Status: &SelectOption{Name: "Not started"}},
	}))
	require.NoError(t, err)

	assert.Empty(t, task.DateStart)
	assert.Empty(t, task.Category)
	assert.Empty(t, task.Priority)
	assert.Empty(t, task.Description)
	assert.Empty(t, task.Location)
}

func TestTask_MissingStatusDefaultsToNotStarted(t *testing.T) {
	n := testNormalizer(t)

	task, err := n.Task(page(map[string]Property{
		"Name": {Type: "title", Title: []RichText{{PlainText: "New"}}},
	}))
	require.NoError(t, err)
	assert.Equal(t, sync.StatusNotStarted, task.Status)
}

func TestTask_Malformed(t *testing.T) {
	n := testNormalizer(t)

	tests := []struct {
		name string
		page Page
	}{
		{
			name: "missing properties bag",
			page: Page{ID: "p1"},
		},
		{
			name: "title property has wrong shape",
			page: page(map[string]Property{
				"Name": {Type: "number"},
			}),
		},
		{
			name: "date property has wrong shape",
			page: page(map[string]Property{
				"Name": {Type: "title", Title: []RichText{{PlainText: "X"}}},
				"Date": {Type: "rich_text", RichText: []RichText{{PlainText: "tomorrow"}}},
			}),
		},
		{
			name: "unknown status option",
			page: page(map[string]Property{
				"Name":   {Type: "title", Title: []RichText{{PlainText: "X"}}},
				"Status": {Type: "status", Status: &SelectOption{Name: "Blocked"}},
			}),
		},
		{
			name: "end date before start date",
			page: page(map[string]Property{
				"Name": {Type: "title", Title: []RichText{{PlainText: "X"}}},
				"Date": {Type: "date", Date: &DateValue{Start: "2024-10-15", End: "2024-10-10"}},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Task(tt.page)
			require.Error(t, err)
			var malformed *MalformedTaskError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestTask_ClearedSelectIsEmpty(t *testing.T) {
	n := testNormalizer(t)

	task, err := n.Task(page(map[string]Property{
		"Name":     {Type: "title", Title: []RichText{{PlainText: "X"}}},
		"Priority": {Type: "select", Select: nil},
	}))
	require.NoError(t, err)
	assert.Empty(t, task.Priority)
}

func TestNewNormalizer_RejectsIncompleteMapping(t *testing.T) {
	defaults := config.Default().Notion
	props := defaults.Properties
	props.Date = ""

	_, err := NewNormalizer(props, defaults.Statuses)
	require.Error(t, err)
}
