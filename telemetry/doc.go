// Package telemetry wires the Snapshot's ambient observability surface:
// a zap logger, an OpenTelemetry tracer, and Prometheus counters for pass
// and merge activity. None of it influences partitioning results — a
// Snapshot built with telemetry disabled produces byte-identical output
// to one with it enabled.
package telemetry
