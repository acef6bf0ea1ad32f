// Package snapshot assembles the operation index, runs the pass pipeline,
// and hands back a validated Export. Snapshot is the one entry point
// downstream callers (including cmd/partition) use; it supplies the
// logger, tracer and metrics (no-op or private defaults unless overridden)
// that the passes pipeline records into.
package snapshot
