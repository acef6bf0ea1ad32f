package passes

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/partition-core/directive"
	"github.com/katalvlaran/partition-core/group"
	"github.com/katalvlaran/partition-core/opgraph"
	"github.com/katalvlaran/partition-core/rewriter"
)

// EarlyAvoids applies every AVOID directive in pc.Avoids, in order. An
// AvoidOp directive matches any Group whose initial OpNode's Description
// equals Pattern; an AvoidPattern directive is handed to m, and every
// matched OpNode's hosting Group is tagged the same way. Unknown patterns
// are logged at warn and otherwise skipped — a single bad directive must
// not abort the whole run.
func EarlyAvoids(r *group.Registry, pc directive.PassContext, m rewriter.Matcher, log *zap.Logger) {
	nodes := operationalNodes(r)
	for _, av := range pc.Avoids {
		switch av.Kind {
		case directive.AvoidOp:
			for _, g := range r.Groups {
				if g.InitialDescription() == av.Pattern {
					tagAvoid(g, av.Device)
				}
			}
		case directive.AvoidPattern:
			matched, err := m.Match(nodes, av.Pattern, rewriter.MetaKeyAvoidDevice, av.Device)
			if err != nil {
				log.Warn("avoid pattern not recognized", zap.String("pattern", av.Pattern), zap.Error(err))
				continue
			}
			for _, nodeID := range matched {
				if g, ok := r.NodeToGroup[nodeID]; ok {
					tagAvoid(g, av.Device)
				}
			}
		}
	}
}

// EarlyRegroup applies every ISOLATE directive in pc.Isolates, in order.
// Each directive is handed to m; every matched OpNode's hosting Group is
// tagged with IsolatedTag, marking the boundary a downstream pass must
// respect. The matched Groups stay open to later structural fusion among
// themselves, so a multi-node pattern still collapses into one isolated
// subgraph instead of fragmenting into permanent singletons.
func EarlyRegroup(r *group.Registry, pc directive.PassContext, m rewriter.Matcher, log *zap.Logger) {
	nodes := operationalNodes(r)
	for _, iso := range pc.Isolates {
		matched, err := m.Match(nodes, iso.Pattern, rewriter.MetaKeyIsolateTag, iso.Tag)
		if err != nil {
			log.Warn("isolate pattern not recognized", zap.String("pattern", iso.Pattern), zap.Error(err))
			continue
		}
		for _, nodeID := range matched {
			g, ok := r.NodeToGroup[nodeID]
			if !ok {
				continue
			}
			g.IsolatedTag = iso.Tag
		}
	}
}

func tagAvoid(g *group.Group, device string) {
	if device != "" {
		g.AvoidedDevices[device] = struct{}{}
	}
}

func operationalNodes(r *group.Registry) []opgraph.Node {
	nodes := make([]opgraph.Node, 0, len(r.NodeToGroup))
	for _, g := range r.Groups {
		for _, id := range g.ContentIDs() {
			nodes = append(nodes, g.Content[id])
		}
	}
	return nodes
}
