// Package schedule fetches and normalizes per-location weekly swim
// schedules.
//
// The upstream service publishes, for each location and each of two week
// slots, a loosely structured JSON document encoded as UTF-16 and sometimes
// prefixed with non-JSON preamble. The pipeline in this package is:
//
//	FetchWeek   — paced, retried HTTP fetch; 404 and empty bodies become
//	              ErrNoData rather than failures
//	DecodeUTF16 — lossy best-effort text decode with a replacement count
//	Normalize   — select the drop-in lane-swim program, classify the pool
//	              length variant, and turn day-name + 12-hour time-range
//	              strings into absolute local-time session intervals
//
// Normalize is deterministic for a fixed document, week offset and "now":
// output order follows the document (programs, then blocks, then slots)
// with no re-sorting.
package schedule
