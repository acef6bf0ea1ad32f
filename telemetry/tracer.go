package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// TracerName is the instrumentation scope every Snapshot span is recorded
// under.
const TracerName = "partition-core"

// ShutdownFunc releases resources held by a TracerProvider.
type ShutdownFunc func(ctx context.Context) error

var noopShutdown ShutdownFunc = func(context.Context) error { return nil }

// NewTracer installs a process-wide SDK TracerProvider (in-memory, with no
// span processor or exporter wired, since the core never reaches a network
// boundary of its own) and returns a Tracer scoped to TracerName plus a shutdown hook.
// When enabled is false, the global no-op TracerProvider is left in place.
func NewTracer(enabled bool) (trace.Tracer, ShutdownFunc) {
	if !enabled {
		return otel.Tracer(TracerName), noopShutdown
	}
	res := resource.NewSchemaless(semconv.ServiceNameKey.String("partition-core"))
	tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)
	return tp.Tracer(TracerName), func(ctx context.Context) error {
		return tp.Shutdown(ctx)
	}
}
