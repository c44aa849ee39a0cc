package notion

import (
	"fmt"
	"strings"

	"github.com/teemow/tasksync/internal/config"
	"github.com/teemow/tasksync/internal/sync"
)

// MalformedTaskError marks a record that cannot be normalized: its
// properties bag is missing, a mapped property has an unexpected shape, or
// its dates violate the end-after-start invariant. Such records are logged
// and dropped rather than failing the run.
type MalformedTaskError struct {
	PageID string
	Field  string
	Reason string
}

func (e *MalformedTaskError) Error() string {
	return fmt.Sprintf("malformed task %s: %s: %s", e.PageID, e.Field, e.Reason)
}

// Normalizer maps raw task-store records onto canonical tasks using the
// configured logical→physical property table.
type Normalizer struct {
	props    config.PropertyMap
	statuses map[string]sync.Status
}

// NewNormalizer builds a normalizer. The property table and status names
// are assumed validated by config.Load; an empty table is rejected here as
// a second line of defense for callers constructing configs by hand.
func NewNormalizer(props config.PropertyMap, names config.StatusNames) (*Normalizer, error) {
	if props.Title == "" || props.Status == "" || props.Date == "" {
		return nil, fmt.Errorf("property map is incomplete: title, status and date are required")
	}
	return &Normalizer{
		props: props,
		statuses: map[string]sync.Status{
			names.NotStarted: sync.StatusNotStarted,
			names.InProgress: sync.StatusInProgress,
			names.Done:       sync.StatusDone,
			names.Archived:   sync.StatusArchived,
		},
	}, nil
}

// NormalizeID strips the hyphens from a page id. The result doubles as
// the calendar event id.
func NormalizeID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

// Task normalizes one record. Missing optional properties become empty
// strings; a missing properties bag, a mapped property of the wrong shape,
// an unknown status option or an end date before the start date yield a
// MalformedTaskError.
func (n *Normalizer) Task(p Page) (sync.Task, error) {
	if p.Properties == nil {
		return sync.Task{}, &MalformedTaskError{PageID: p.ID, Field: "properties", Reason: "missing"}
	}

	t := sync.Task{ID: NormalizeID(p.ID)}

	var err error
	if t.Title, err = n.textProp(p, n.props.Title); err != nil {
		return sync.Task{}, err
	}
	if t.Status, err = n.statusProp(p); err != nil {
		return sync.Task{}, err
	}
	if t.DateStart, t.DateEnd, err = n.dateProp(p); err != nil {
		return sync.Task{}, err
	}
	if t.Category, err = n.optionProp(p, n.props.Category); err != nil {
		return sync.Task{}, err
	}
	if t.Type, err = n.optionProp(p, n.props.Type); err != nil {
		return sync.Task{}, err
	}
	if t.Priority, err = n.optionProp(p, n.props.Priority); err != nil {
		return sync.Task{}, err
	}
	t.Priority = strings.ToLower(t.Priority)
	if t.Description, err = n.textProp(p, n.props.Description); err != nil {
		return sync.Task{}, err
	}
	if t.Location, err = n.textProp(p, n.props.Location); err != nil {
		return sync.Task{}, err
	}

	if t.DateStart != "" && t.DateEnd != "" {
		start, serr := sync.ParseDate(t.DateStart)
		end, eerr := sync.ParseDate(t.DateEnd)
		if serr == nil && eerr == nil && end.Before(start) {
			return sync.Task{}, &MalformedTaskError{
				PageID: p.ID, Field: n.props.Date, Reason: "end date before start date",
			}
		}
	}

	return t, nil
}

// textProp reads a title or rich_text property as plain text. Missing
// properties normalize to "".
func (n *Normalizer) textProp(p Page, name string) (string, error) {
	prop, ok := p.Properties[name]
	if !ok {
		return "", nil
	}
	switch prop.Type {
	case "title":
		return text(prop.Title), nil
	case "rich_text":
		return text(prop.RichText), nil
	default:
		return "", &MalformedTaskError{
			PageID: p.ID, Field: name,
			Reason: fmt.Sprintf("expected text property, got %q", prop.Type),
		}
	}
}

// optionProp reads a select or status property's option name. Missing
// properties and cleared selections normalize to "".
func (n *Normalizer) optionProp(p Page, name string) (string, error) {
	prop, ok := p.Properties[name]
	if !ok {
		return "", nil
	}
	switch prop.Type {
	case "select":
		if prop.Select == nil {
			return "", nil
		}
		return prop.Select.Name, nil
	case "status":
		if prop.Status == nil {
			return "", nil
		}
		return prop.Status.Name, nil
	case "rich_text":
		return text(prop.RichText), nil
	default:
		return "", &MalformedTaskError{
			PageID: p.ID, Field: name,
			Reason: fmt.Sprintf("expected select property, got %q", prop.Type),
		}
	}
}

func (n *Normalizer) statusProp(p Page) (sync.Status, error) {
	raw, err := n.optionProp(p, n.props.Status)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return sync.StatusNotStarted, nil
	}
	status, ok := n.statuses[raw]
	if !ok {
		return "", &MalformedTaskError{
			PageID: p.ID, Field: n.props.Status,
			Reason: fmt.Sprintf("unknown status option %q", raw),
		}
	}
	return status, nil
}

// dateProp reads the date property's raw start and end strings.
func (n *Normalizer) dateProp(p Page) (string, string, error) {
	prop, ok := p.Properties[n.props.Date]
	if !ok {
		return "", "", nil
	}
	if prop.Type != "date" {
		return "", "", &MalformedTaskError{
			PageID: p.ID, Field: n.props.Date,
			Reason: fmt.Sprintf("expected date property, got %q", prop.Type),
		}
	}
	if prop.Date == nil {
		return "", "", nil
	}
	return prop.Date.Start, prop.Date.End, nil
}
