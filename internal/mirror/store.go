package mirror

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/teemow/tasksync/internal/sync"
)

//go:embed schema.sql
var schemaSQL string

// Store is the durable single-table record of every calendar event the
// engine created, keyed by task id. One run is the only writer; SQLite
// gives per-row atomicity, which is all the engine needs.
type Store struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at the given path and applies
// pragmas and the schema. Safe to call on an existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under the engine's sequential access pattern.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Get returns the mirrored event for the given task id.
func (s *Store) Get(ctx context.Context, id string) (sync.Event, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, summary, description, location, start_value, end_value, all_day
		FROM mirror_events WHERE id = ?
	`, id)

	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return sync.Event{}, false, nil
	}
	if err != nil {
		return sync.Event{}, false, fmt.Errorf("get mirror record: %w", err)
	}
	return ev, true, nil
}

// FindOrCreate inserts a mirror record for a newly created event. An
// existing record under the same id is left untouched for idempotency.
func (s *Store) FindOrCreate(ctx context.Context, ev sync.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mirror_events
		(id, summary, description, location, start_value, end_value, all_day, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, ev.ID, ev.Summary, ev.Description, ev.Location,
		timeValue(ev.Start), timeValue(ev.End), boolInt(ev.AllDay),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("create mirror record: %w", err)
	}
	return nil
}

// Update refreshes the mirror record after a successful event update.
// Missing records are created, so a lost record heals on the next update.
func (s *Store) Update(ctx context.Context, ev sync.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mirror_events
		(id, summary, description, location, start_value, end_value, all_day, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			summary = excluded.summary,
			description = excluded.description,
			location = excluded.location,
			start_value = excluded.start_value,
			end_value = excluded.end_value,
			all_day = excluded.all_day,
			updated_at = excluded.updated_at
	`, ev.ID, ev.Summary, ev.Description, ev.Location,
		timeValue(ev.Start), timeValue(ev.End), boolInt(ev.AllDay),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("update mirror record: %w", err)
	}
	return nil
}

// Delete removes the mirror record for the given task id. Deleting a
// missing record is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM mirror_events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete mirror record: %w", err)
	}
	return nil
}

// DeleteWhereNotIn purges every record whose id is absent from ids and
// returns the number of rows removed. An empty set removes all records.
func (s *Store) DeleteWhereNotIn(ctx context.Context, ids map[string]struct{}) (int, error) {
	var result sql.Result
	var err error

	if len(ids) == 0 {
		result, err = s.db.ExecContext(ctx, `DELETE FROM mirror_events`)
	} else {
		placeholders := make([]string, 0, len(ids))
		args := make([]any, 0, len(ids))
		for id := range ids {
			placeholders = append(placeholders, "?")
			args = append(args, id)
		}
		query := fmt.Sprintf(`DELETE FROM mirror_events WHERE id NOT IN (%s)`,
			strings.Join(placeholders, ", "))
		result, err = s.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return 0, fmt.Errorf("delete orphan mirror records: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete orphan mirror records: %w", err)
	}
	return int(n), nil
}

// All returns every mirrored event.
func (s *Store) All(ctx context.Context) ([]sync.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, summary, description, location, start_value, end_value, all_day
		FROM mirror_events ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list mirror records: %w", err)
	}
	defer rows.Close()

	var events []sync.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("list mirror records: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list mirror records: %w", err)
	}
	return events, nil
}

// PruneBefore drops records whose event ended fully before cutoff and
// returns the number removed. Records whose end cannot be parsed are kept.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	events, err := s.All(ctx)
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, ev := range events {
		raw := ev.End.DateTime
		if raw == "" {
			raw = ev.End.Date
		}
		if raw == "" {
			continue
		}
		end, err := sync.ParseDate(raw)
		if err != nil {
			continue
		}
		if ev.AllDay {
			// An all-day event covers its end date until midnight.
			end = end.Add(24 * time.Hour)
		}
		if end.Before(cutoff) {
			if err := s.Delete(ctx, ev.ID); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (sync.Event, error) {
	var ev sync.Event
	var start, end string
	var allDay int
	if err := row.Scan(&ev.ID, &ev.Summary, &ev.Description, &ev.Location, &start, &end, &allDay); err != nil {
		return sync.Event{}, err
	}
	ev.AllDay = allDay != 0
	if ev.AllDay {
		ev.Start = sync.EventTime{Date: start}
		ev.End = sync.EventTime{Date: end}
	} else {
		ev.Start = sync.EventTime{DateTime: start}
		ev.End = sync.EventTime{DateTime: end}
	}
	return ev, nil
}

func timeValue(t sync.EventTime) string {
	if t.Date != "" {
		return t.Date
	}
	return t.DateTime
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
