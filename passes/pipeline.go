package passes

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/partition-core/directive"
	"github.com/katalvlaran/partition-core/group"
	"github.com/katalvlaran/partition-core/opgraph"
	"github.com/katalvlaran/partition-core/rewriter"
	"github.com/katalvlaran/partition-core/telemetry"
)

// Pipeline runs the full ordered pass sequence over idx under pc, using m
// to resolve AVOID/ISOLATE patterns, and returns the final Export. It
// aborts with the first FatalError encountered. Each pass opens its own
// span under tracer and reports its wall-clock duration and merge count
// (the Group-count drop it caused) to metrics.
func Pipeline(ctx context.Context, idx *opgraph.Index, pc directive.PassContext, m rewriter.Matcher, log *zap.Logger, tracer trace.Tracer, metrics *telemetry.Metrics) (*Export, error) {
	r := Build(idx)

	runPass(ctx, tracer, metrics, "earlyAvoids", r, func() error {
		EarlyAvoids(r, pc, m, log)
		return nil
	})
	runPass(ctx, tracer, metrics, "earlyRegroup", r, func() error {
		EarlyRegroup(r, pc, m, log)
		return nil
	})

	runPass(ctx, tracer, metrics, "collectLHF", r, func() error {
		CollectLHF(r, pc.MinGraphSize)
		return nil
	})
	runPass(ctx, tracer, metrics, "fuseRemnantsExtended", r, func() error {
		FuseRemnantsExtended(r, pc.MinGraphSize)
		return nil
	})

	runPass(ctx, tracer, metrics, "identifyUniques", r, func() error {
		IdentifyUniques(r)
		return nil
	})
	if err := runPass(ctx, tracer, metrics, "mergeUniques", r, func() error {
		return MergeUniques(r, log)
	}); err != nil {
		return nil, err
	}
	if err := runPass(ctx, tracer, metrics, "mergeTriangles", r, func() error {
		return MergeTriangles(r)
	}); err != nil {
		return nil, err
	}

	var matches map[string][][]string
	if err := runPass(ctx, tracer, metrics, "cleanUpUniques", r, func() error {
		var err error
		matches, err = CleanUpUniques(r, pc)
		return err
	}); err != nil {
		return nil, err
	}

	return BuildExport(r, idx, matches), nil
}

// runPass wraps one pipeline pass in a span named after it, records its
// wall-clock duration and the Group-count drop it caused (every merge
// primitive removes exactly one absorbed Group from r.Groups, so that
// drop is the pass's merge count) to metrics, and returns fn's error, if
// any, after recording it on the span.
func runPass(ctx context.Context, tracer trace.Tracer, metrics *telemetry.Metrics, name string, r *group.Registry, fn func() error) error {
	_, span := tracer.Start(ctx, "partition.pass."+name)
	defer span.End()

	before := len(r.Groups)
	start := time.Now()
	err := fn()
	after := len(r.Groups)

	metrics.ObservePassDuration(name, time.Since(start).Seconds())
	metrics.AddMerges(name, before-after)
	span.SetAttributes(
		attribute.Int("groups.before", before),
		attribute.Int("groups.after", after),
		attribute.Int("merges", before-after),
	)
	if err != nil {
		span.RecordError(err)
	}
	return err
}
