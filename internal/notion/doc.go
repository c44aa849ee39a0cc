// Package notion provides the task-store client and the task normalizer.
//
// The client is a thin wrapper over the Notion REST API covering the
// three operations the engine issues: the active-task query, the
// archived-id query and the status flip to Archived. Database queries
// page sequentially; each cursor gates the next request.
//
// The wire types keep date values as raw strings because the engine's
// projector distinguishes timed from all-day tasks by pattern-matching
// the raw text. The normalizer resolves property names through the
// configured logical→physical table, drops malformed records with a typed
// error and strips hyphens from page ids so they double as calendar event
// ids.
package notion
