package snapshot

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/partition-core/directive"
	"github.com/katalvlaran/partition-core/opgraph"
	"github.com/katalvlaran/partition-core/passes"
	"github.com/katalvlaran/partition-core/rewriter"
	"github.com/katalvlaran/partition-core/telemetry"
)

// Options collects everything an Option can configure on a Snapshot.
type Options struct {
	Logger  *zap.Logger
	Tracer  trace.Tracer
	Metrics *telemetry.Metrics
	Matcher rewriter.Matcher
}

// Option configures a Snapshot at construction time.
type Option func(*Options)

// WithLogger overrides the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithTracer overrides the default no-op tracer.
func WithTracer(tr trace.Tracer) Option {
	return func(o *Options) { o.Tracer = tr }
}

// WithMetrics overrides the default Metrics (registered against
// prometheus.NewRegistry(), not the global default registry).
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithMatcher overrides the default rewriter.Registry pattern matcher.
func WithMatcher(m rewriter.Matcher) Option {
	return func(o *Options) { o.Matcher = m }
}

// Snapshot holds the operation index and configuration needed to run one
// partitioning. It is built once from a topologically-ordered node list
// and is not reused across runs: Run mutates the Registry it builds
// internally to completion.
type Snapshot struct {
	idx *opgraph.Index
	pc  directive.PassContext
	opt Options
}

// New indexes nodes (must already be in topological order, the source
// model's contract) and returns a Snapshot ready to Run under pc.
func New(nodes []opgraph.Node, pc directive.PassContext, opts ...Option) *Snapshot {
	o := Options{
		Logger:  zap.NewNop(),
		Tracer:  trace.NewNoopTracerProvider().Tracer(telemetry.TracerName),
		Metrics: telemetry.NewMetrics(prometheus.NewRegistry()),
		Matcher: rewriter.Registry{},
	}
	for _, apply := range opts {
		apply(&o)
	}
	return &Snapshot{idx: opgraph.Build(nodes), pc: pc, opt: o}
}

// Run executes the full pass pipeline and returns a validated Export.
func (s *Snapshot) Run(ctx context.Context) (*passes.Export, error) {
	ctx, span := s.opt.Tracer.Start(ctx, "partition.Run")
	defer span.End()

	start := time.Now()
	exp, err := passes.Pipeline(ctx, s.idx, s.pc, s.opt.Matcher, s.opt.Logger, s.opt.Tracer, s.opt.Metrics)
	s.opt.Metrics.ObservePassDuration("pipeline", time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.opt.Metrics.SetFinalCounts(len(exp.Registry.Groups), len(exp.Matches))

	if verr := Validate(exp, s.idx); verr != nil {
		span.RecordError(verr)
		return nil, verr
	}
	return exp, nil
}
