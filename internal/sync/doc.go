// Package sync implements the reconciliation engine that mirrors task-store
// tasks into calendar events, one way.
//
// One pass fetches the active task set and the relevant calendar events,
// diffs each projected event against the combined mirror-store/remote
// lookup and issues the minimal set of create, update, archive and delete
// operations. Unchanged tasks never generate calendar writes, so repeated
// passes over an unchanged task set are free.
//
// The engine owns all decision logic; fetching, persistence and the
// calendar transport are behind the TaskSource, CalendarService and
// MirrorStore interfaces so that the engine can be exercised hermetically
// in tests.
package sync
