// Package logging provides structured logging helpers built on log/slog.
//
// It defines the attribute-key constants used across the codebase so that
// log output stays queryable (operation, service, task, event, status,
// error) and small helpers that build slog attributes from domain values.
package logging
