// Package cmd implements the command-line interface for tasksync.
//
// This package provides the following commands:
//   - sync: Run one reconciliation pass between Notion tasks and Google Calendar
//   - auth: Authenticate with Google Calendar and store the OAuth token
//   - version: Display version information
//
// The sync command is the default command when no subcommand is specified.
package cmd
