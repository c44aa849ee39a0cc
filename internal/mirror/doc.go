// Package mirror persists the last-known state of every calendar event
// the sync engine created, in a single SQLite table keyed by task id.
//
// The mirror lets the engine answer "does an event already exist for this
// task" and "did any synced field change" without a network round-trip per
// task, and makes repeated passes idempotent across process restarts.
package mirror
