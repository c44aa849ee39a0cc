// Package instrumentation provides OpenTelemetry metrics for the tasksync
// reconciliation pass.
//
// Because tasksync runs as a discrete batch pass rather than a server,
// metrics are aggregated in memory for the duration of the run and emitted
// once to stderr via the stdout metric exporter when the provider shuts
// down. There is no scrape endpoint.
//
// The package exposes the following metrics:
//   - sync_tasks_processed_total: Counter of tasks by reconciliation result
//     (created, updated, unchanged, skipped, archived)
//   - sync_events_deleted_total: Counter of calendar events deleted by
//     archival and orphan cleanup
//   - sync_errors_total: Counter of per-item errors by operation
//   - sync_pass_duration_seconds: Histogram of full pass durations
package instrumentation
