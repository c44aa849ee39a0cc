// Package config loads and validates the tasksync configuration: the
// task-store property mapping table, calendar and throttle settings, the
// mirror-store path and the archival threshold.
//
// Configuration is YAML with environment-variable overrides for secrets.
// Validation runs at load time so a missing property mapping fails the
// process before any network call is made.
package config
