// Package snapshot holds the persisted data model: facilities with their
// normalized lane-swim sessions, the atomic on-disk snapshot store, and the
// time-window query filters served by the HTTP layer.
package snapshot
