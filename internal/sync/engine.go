package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teemow/tasksync/internal/instrumentation"
	"github.com/teemow/tasksync/internal/logging"
)

// Options tune a single reconciliation pass.
type Options struct {
	// Window is how far into the past fetched calendar events and mirror
	// records stay relevant. Events fully before now-Window are pruned.
	Window time.Duration

	// ArchiveAfter is how long a done task's end date must be in the past
	// before the task is archived and its event retired.
	ArchiveAfter time.Duration

	// Throttle is the fixed delay inserted between calendar-service
	// mutations to stay under the service's burst rate limit.
	Throttle time.Duration

	// DryRun logs every decision without issuing task-store,
	// calendar-service or mirror-store writes.
	DryRun bool
}

// Result counts the decisions of one pass.
type Result struct {
	Created   int
	Updated   int
	Unchanged int
	Skipped   int
	Archived  int
	Deleted   int
	Pruned    int
	Failed    int
}

// Engine runs one reconciliation pass: fetch tasks and events, diff
// against the mirror store, and issue the minimal set of create, update,
// archive and delete operations. All collaborators are injected and scoped
// to the engine's lifetime; the engine holds no globals.
type Engine struct {
	tasks   TaskSource
	cal     CalendarService
	mirror  MirrorStore
	log     *slog.Logger
	metrics *instrumentation.Metrics
	now     func() time.Time
	opts    Options
}

// NewEngine wires a reconciliation engine from its collaborators.
// A nil logger falls back to slog.Default; a nil metrics recorder is
// valid and records nothing.
func NewEngine(tasks TaskSource, cal CalendarService, mirror MirrorStore, log *slog.Logger, metrics *instrumentation.Metrics, opts Options) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if opts.Window <= 0 {
		opts.Window = 30 * 24 * time.Hour
	}
	if opts.ArchiveAfter <= 0 {
		opts.ArchiveAfter = DefaultArchiveAfter
	}
	return &Engine{
		tasks:   tasks,
		cal:     cal,
		mirror:  mirror,
		log:     log,
		metrics: metrics,
		now:     time.Now,
		opts:    opts,
	}
}

// SetClock replaces the engine's time source. Tests use this to pin "now".
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Run executes one full pass. It returns an error only when the pass could
// not start at all: the initial task fetch, the initial event fetch or a
// mirror-store read failed. Per-item failures are logged, counted in
// Result.Failed and retried implicitly on the next pass.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	started := e.now()
	windowStart := started.Add(-e.opts.Window)
	var res Result

	active, err := e.tasks.ActiveTasks(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch active tasks: %w", err)
	}

	remote, err := e.cal.ListEvents(ctx, windowStart)
	if err != nil {
		return res, fmt.Errorf("fetch calendar events: %w", err)
	}

	existing, err := e.buildLookup(ctx, remote)
	if err != nil {
		return res, fmt.Errorf("build event lookup: %w", err)
	}

	for _, t := range active {
		// A task about to be archived gets its event deleted this pass;
		// syncing it first would be a wasted calendar write.
		if archiveDue(t, started, e.opts.ArchiveAfter) {
			continue
		}
		e.syncTask(ctx, t, existing, &res)
	}

	archived := e.archivePass(ctx, active, &res)

	e.cleanupOrphans(ctx, active, archived, &res)

	if e.opts.DryRun {
		e.log.Info("would prune mirror records outside the relevance window")
	} else if n, err := e.mirror.PruneBefore(ctx, windowStart); err != nil {
		e.log.Warn("failed to prune stale mirror records", logging.Err(err))
	} else {
		res.Pruned = n
	}

	e.metrics.RecordPassDuration(ctx, e.now().Sub(started).Seconds())
	e.log.Info("reconciliation pass complete",
		slog.Int("created", res.Created),
		slog.Int("updated", res.Updated),
		slog.Int("unchanged", res.Unchanged),
		slog.Int("skipped", res.Skipped),
		slog.Int("archived", res.Archived),
		slog.Int("deleted", res.Deleted),
		slog.Int("pruned", res.Pruned),
		slog.Int("failed", res.Failed),
	)
	return res, nil
}

// buildLookup merges freshly fetched events with mirror records. Fetched
// events win because they reflect the live remote state; mirror records
// fill in events that have slid out of the fetch window.
func (e *Engine) buildLookup(ctx context.Context, remote []Event) (map[string]Event, error) {
	mirrored, err := e.mirror.All(ctx)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]Event, len(remote)+len(mirrored))
	for _, ev := range mirrored {
		lookup[ev.ID] = ev
	}
	for _, ev := range remote {
		lookup[ev.ID] = ev
	}
	return lookup, nil
}

// syncTask drives one task through the create/update/skip decision.
func (e *Engine) syncTask(ctx context.Context, t Task, existing map[string]Event, res *Result) {
	log := e.log.With(logging.Task(t.ID))

	candidate, err := Project(t)
	if err != nil {
		if IsNoDate(err) {
			log.Info("task has no start date, skipping", logging.Status(logging.StatusSkipped))
			e.metrics.RecordTask(ctx, instrumentation.ResultSkipped)
			res.Skipped++
			return
		}
		log.Warn("failed to project task", logging.Err(err))
		e.metrics.RecordError(ctx, "project")
		res.Failed++
		return
	}

	current, ok := existing[t.ID]
	if !ok {
		e.createEvent(ctx, log, candidate, res)
		return
	}

	if FieldsEqual(current, candidate) {
		e.metrics.RecordTask(ctx, instrumentation.ResultUnchanged)
		res.Unchanged++
		return
	}

	if e.opts.DryRun {
		log.Info("would update event", logging.Operation("update"))
		res.Updated++
		return
	}
	if err := e.cal.UpdateEvent(ctx, candidate); err != nil {
		log.Warn("failed to update event", logging.Err(err))
		e.metrics.RecordError(ctx, "update")
		res.Failed++
		return
	}
	if err := e.mirror.Update(ctx, candidate); err != nil {
		log.Warn("event updated but mirror record not refreshed", logging.Err(err))
	}
	e.metrics.RecordTask(ctx, instrumentation.ResultUpdated)
	res.Updated++
	e.throttle(ctx)
}

// createEvent issues a create keyed by the task id. A duplicate-id
// conflict means the event exists remotely but the mirror record was lost;
// the remote event is re-adopted into the mirror so the next pass diffs it
// instead of colliding again.
func (e *Engine) createEvent(ctx context.Context, log *slog.Logger, candidate Event, res *Result) {
	if e.opts.DryRun {
		log.Info("would create event", logging.Operation("create"))
		res.Created++
		return
	}

	err := e.cal.InsertEvent(ctx, candidate)
	if err == nil {
		if err := e.mirror.FindOrCreate(ctx, candidate); err != nil {
			log.Warn("event created but mirror record not persisted", logging.Err(err))
		}
		e.metrics.RecordTask(ctx, instrumentation.ResultCreated)
		res.Created++
		e.throttle(ctx)
		return
	}

	if IsConflict(err) {
		log.Warn("event id already exists, re-adopting remote event", logging.Err(err))
		remote, getErr := e.cal.GetEvent(ctx, candidate.ID)
		if getErr != nil {
			log.Warn("failed to fetch conflicting event", logging.Err(getErr))
		} else if mirErr := e.mirror.FindOrCreate(ctx, remote); mirErr != nil {
			log.Warn("failed to re-adopt conflicting event", logging.Err(mirErr))
		}
		e.metrics.RecordError(ctx, "create_conflict")
		res.Failed++
		return
	}

	log.Warn("failed to create event", logging.Err(err))
	e.metrics.RecordError(ctx, "create")
	res.Failed++
}

// archivePass retires done-and-stale tasks: flip the task-store status to
// Archived, then delete the mirrored event immediately rather than leaving
// it to orphan cleanup (which keys on the active∪archived union and would
// never flag an archived task). A failed status flip keeps the task active
// for this run; it is retried next pass.
func (e *Engine) archivePass(ctx context.Context, active []Task, res *Result) []string {
	now := e.now()
	var archived []string

	for _, t := range active {
		if !archiveDue(t, now, e.opts.ArchiveAfter) {
			continue
		}
		log := e.log.With(logging.Task(t.ID), logging.Operation("archive"))

		if e.opts.DryRun {
			log.Info("would archive task")
			res.Archived++
			continue
		}

		if err := e.tasks.ArchiveTask(ctx, t.ID); err != nil {
			log.Warn("failed to archive task, keeping active", logging.Err(err))
			e.metrics.RecordError(ctx, "archive")
			res.Failed++
			continue
		}
		archived = append(archived, t.ID)

		if err := e.cal.DeleteEvent(ctx, t.ID); err != nil && !IsNotFound(err) {
			// The mirror record survives so a later pass retries the
			// delete; an archived task is never picked up as an orphan.
			log.Warn("failed to delete event for archived task, keeping mirror record", logging.Err(err))
			e.metrics.RecordError(ctx, "archive_delete")
			res.Failed++
		} else {
			e.metrics.RecordDeleted(ctx)
			e.throttle(ctx)
			if err := e.mirror.Delete(ctx, t.ID); err != nil {
				log.Warn("failed to purge mirror record", logging.Err(err))
			}
		}

		log.Info("task archived", logging.Status(logging.StatusSuccess))
		e.metrics.RecordTask(ctx, instrumentation.ResultArchived)
		res.Archived++
	}
	return archived
}

// cleanupOrphans retires every mirrored event that no longer has a live
// task behind it. Two cases land here: tasks deleted outright from the
// task store (in neither the active nor the archived set), and mirror
// records kept behind by an archival pass whose event delete failed — an
// archived id shields its event from orphan classification, so this is
// the retry path for those. When the archived-id fetch fails the phase is
// skipped entirely: without the full id union, any deletion could destroy
// a live event.
func (e *Engine) cleanupOrphans(ctx context.Context, active []Task, justArchived []string, res *Result) {
	archivedIDs, err := e.tasks.ArchivedTaskIDs(ctx)
	if err != nil {
		e.log.Warn("failed to fetch archived task ids, skipping orphan cleanup", logging.Err(err))
		e.metrics.RecordError(ctx, "orphan_fetch")
		return
	}

	archived := make(map[string]struct{}, len(archivedIDs))
	for _, id := range archivedIDs {
		archived[id] = struct{}{}
	}

	keep := make(map[string]struct{}, len(active)+len(justArchived))
	for _, t := range active {
		keep[t.ID] = struct{}{}
	}
	// Tasks archived in this pass were already handled; a failed delete
	// kept its mirror record and is retried on the next pass.
	for _, id := range justArchived {
		keep[id] = struct{}{}
	}

	mirrored, err := e.mirror.All(ctx)
	if err != nil {
		e.log.Warn("failed to read mirror store, skipping orphan cleanup", logging.Err(err))
		return
	}

	for _, ev := range mirrored {
		if _, ok := keep[ev.ID]; ok {
			continue
		}
		op := "orphan_cleanup"
		if _, ok := archived[ev.ID]; ok {
			op = "archive_retry"
		}
		log := e.log.With(logging.Event(ev.ID), logging.Operation(op))

		if e.opts.DryRun {
			log.Info("would delete event")
			res.Deleted++
			continue
		}

		err := e.cal.DeleteEvent(ctx, ev.ID)
		if err != nil && !IsNotFound(err) {
			log.Warn("failed to delete event", logging.Err(err))
			e.metrics.RecordError(ctx, op)
			res.Failed++
			// Keep the mirror record so the delete is retried next pass.
			keep[ev.ID] = struct{}{}
			continue
		}
		log.Info("event deleted")
		e.metrics.RecordDeleted(ctx)
		res.Deleted++
		e.throttle(ctx)
	}

	if e.opts.DryRun {
		return
	}
	if _, err := e.mirror.DeleteWhereNotIn(ctx, keep); err != nil {
		e.log.Warn("failed to purge retired mirror records", logging.Err(err))
	}
}

// throttle sleeps the configured inter-call delay between calendar-service
// mutations, returning early when the context is cancelled.
func (e *Engine) throttle(ctx context.Context) {
	if e.opts.Throttle <= 0 {
		return
	}
	timer := time.NewTimer(e.opts.Throttle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
