package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	attrResult    = "result"
	attrOperation = "operation"
)

// Task results recorded per reconciliation decision.
const (
	ResultCreated   = "created"
	ResultUpdated   = "updated"
	ResultUnchanged = "unchanged"
	ResultSkipped   = "skipped"
	ResultArchived  = "archived"
)

// Metrics provides methods for recording sync pass observability metrics.
// A nil *Metrics is valid and records nothing, so callers don't need to
// guard every call site when instrumentation is disabled.
type Metrics struct {
	tasksProcessed metric.Int64Counter
	eventsDeleted  metric.Int64Counter
	syncErrors     metric.Int64Counter
	passDuration   metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.tasksProcessed, err = meter.Int64Counter(
		"sync_tasks_processed_total",
		metric.WithDescription("Total number of tasks processed, by reconciliation result"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync_tasks_processed_total counter: %w", err)
	}

	m.eventsDeleted, err = meter.Int64Counter(
		"sync_events_deleted_total",
		metric.WithDescription("Total number of calendar events deleted (archival and orphan cleanup)"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync_events_deleted_total counter: %w", err)
	}

	m.syncErrors, err = meter.Int64Counter(
		"sync_errors_total",
		metric.WithDescription("Total number of per-item errors, by operation"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync_errors_total counter: %w", err)
	}

	m.passDuration, err = meter.Float64Histogram(
		"sync_pass_duration_seconds",
		metric.WithDescription("Duration of a full reconciliation pass in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 5.0, 15.0, 30.0, 60.0, 120.0, 300.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync_pass_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordTask records one processed task with its reconciliation result.
func (m *Metrics) RecordTask(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.tasksProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
	))
}

// RecordDeleted records one deleted calendar event.
func (m *Metrics) RecordDeleted(ctx context.Context) {
	if m == nil {
		return
	}
	m.eventsDeleted.Add(ctx, 1)
}

// RecordError records one per-item error for the given operation.
func (m *Metrics) RecordError(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.syncErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOperation, operation),
	))
}

// RecordPassDuration records the wall-clock duration of a full pass.
func (m *Metrics) RecordPassDuration(ctx context.Context, seconds float64) {
	if m == nil {
		return
	}
	m.passDuration.Record(ctx, seconds)
}
