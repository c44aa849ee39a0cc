package sync

import (
	"context"
	"time"
)

// Status is the lifecycle state of a task in the task store.
type Status string

const (
	StatusNotStarted Status = "Not started"
	StatusInProgress Status = "In progress"
	StatusDone       Status = "Done"
	StatusArchived   Status = "Archived"
)

// Task is the canonical form of a task-store record for one sync pass.
// Date fields keep the raw ISO strings from the task store because the
// projector decides timed-vs-all-day by inspecting the raw text, not the
// parsed value (a parsed date-only and a parsed midnight timestamp are
// indistinguishable).
type Task struct {
	ID          string // opaque, hyphens stripped; doubles as the event id
	Title       string
	Status      Status
	DateStart   string
	DateEnd     string
	Category    string
	Type        string
	Priority    string // lower-cased: low, medium, high
	Description string
	Location    string
}

// EventTime is one bound of an event, either a calendar date or a timestamp.
// Exactly one of Date and DateTime is set for a populated bound.
type EventTime struct {
	Date     string // YYYY-MM-DD for all-day events
	DateTime string // RFC 3339 for timed events
}

// IsZero reports whether neither representation is set.
func (t EventTime) IsZero() bool {
	return t.Date == "" && t.DateTime == ""
}

// Event is the canonical calendar-event representation the engine diffs
// against. Its ID always equals the originating task id.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       EventTime
	End         EventTime
	AllDay      bool
}

// TaskSource provides the two task-store queries and the status flip the
// engine issues per pass. Implementations page sequentially and drop
// malformed records after logging them.
type TaskSource interface {
	// ActiveTasks returns all tasks whose status is not Archived.
	ActiveTasks(ctx context.Context) ([]Task, error)

	// ArchivedTaskIDs returns the normalized ids of all archived tasks.
	ArchivedTaskIDs(ctx context.Context) ([]string, error)

	// ArchiveTask flips a task's status to Archived in the task store.
	ArchiveTask(ctx context.Context, id string) error
}

// CalendarService is the calendar side of the sync. Errors are classified
// via IsNotFound and IsConflict.
type CalendarService interface {
	// ListEvents returns events starting at or after timeMin.
	ListEvents(ctx context.Context, timeMin time.Time) ([]Event, error)

	// GetEvent fetches a single event by id.
	GetEvent(ctx context.Context, id string) (Event, error)

	// InsertEvent creates an event using ev.ID as the event id.
	InsertEvent(ctx context.Context, ev Event) error

	// UpdateEvent replaces the synced fields of the event with id ev.ID.
	UpdateEvent(ctx context.Context, ev Event) error

	// DeleteEvent removes an event by id.
	DeleteEvent(ctx context.Context, id string) error
}

// MirrorStore persists the last-known state of every event the engine
// created, keyed by task id. It is the source of truth for "does an event
// already exist for task X" between passes.
type MirrorStore interface {
	Get(ctx context.Context, id string) (Event, bool, error)
	FindOrCreate(ctx context.Context, ev Event) error
	Update(ctx context.Context, ev Event) error
	Delete(ctx context.Context, id string) error

	// DeleteWhereNotIn purges every record whose id is absent from ids and
	// returns the number of rows removed.
	DeleteWhereNotIn(ctx context.Context, ids map[string]struct{}) (int, error)

	// All returns every mirrored event.
	All(ctx context.Context) ([]Event, error)

	// PruneBefore drops records whose event lies fully before cutoff.
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
}
