package sync

import "errors"

var (
	// ErrNotFound indicates the calendar service has no event under the
	// given id. A delete that hits this is already satisfied.
	ErrNotFound = errors.New("event not found")

	// ErrConflict indicates the calendar service rejected a create because
	// the event id is already taken.
	ErrConflict = errors.New("event id already exists")

	// ErrNoDate indicates a task has no start date and projects to no event.
	ErrNoDate = errors.New("task has no start date")
)

// IsNotFound reports whether err is a not-found from the calendar service.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is a duplicate-id conflict from the
// calendar service.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsNoDate reports whether err came from projecting a task without a
// start date.
func IsNoDate(err error) bool {
	return errors.Is(err, ErrNoDate)
}
