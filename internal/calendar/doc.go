// Package calendar provides a client for interacting with the Google
// Calendar API, scoped to the operations the sync engine issues: paginated
// listing within a time window, insert keyed by task id, full-field
// update, and delete.
//
// Google API errors are classified onto the sync package's sentinel
// errors so that the engine can distinguish a 404 (delete already
// satisfied) and a 409 (duplicate event id) from transient failures.
package calendar
