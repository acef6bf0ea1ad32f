package passes

import (
	"sort"

	"github.com/katalvlaran/partition-core/group"
)

// repeatToFixedPoint runs sweep repeatedly: before every iteration,
// including the first, it checks the Group count against minSize and
// stops if it is already at or below it — the min-size gate fires before
// the pass ever runs, even on its first call, which means an already-small
// Group DAG never runs the wrapped pass at all. This mirrors a documented
// quirk of the source algorithm and is preserved deliberately rather than
// "fixed" to check after the first iteration.
//
// Once the gate is open, sweep runs until it reports no merges in a given
// pass, or the count drops to minSize.
func repeatToFixedPoint(r *group.Registry, minSize int, sweep func(r *group.Registry, minSize int) bool) {
	for len(r.Groups) > minSize {
		if !sweep(r, minSize) {
			return
		}
	}
}

// CollectLHF (Linear-Head-Fuse) repeatedly sweeps the Group DAG in
// topological order; for each Group g still present with exactly one
// producer p such that p has exactly one consumer (g itself), and neither
// is frozen, it merges p into g (g's id survives). Run to fixed point, this
// collapses straight-line chains into single Groups.
func CollectLHF(r *group.Registry, minSize int) {
	repeatToFixedPoint(r, minSize, collectLHFSweep)
}

func collectLHFSweep(r *group.Registry, minSize int) bool {
	order, err := r.DAG.TopologicalSort()
	if err != nil {
		return false
	}
	merged := false
	for _, gid := range order {
		if len(r.Groups) <= minSize {
			break
		}
		g, ok := r.Groups[gid]
		if !ok || g.Frozen {
			continue
		}
		prods := r.Producers(g)
		if len(prods) != 1 || prods[0].Frozen {
			continue
		}
		p := prods[0]
		if len(r.Consumers(p)) != 1 {
			continue
		}
		r.Fuse(g, p)
		merged = true
	}
	return merged
}

// FuseRemnantsExtended runs fuseRemnants to fixed point, then fuseInputs to
// fixed point, each gated by the same minSize via repeatToFixedPoint.
func FuseRemnantsExtended(r *group.Registry, minSize int) {
	repeatToFixedPoint(r, minSize, fuseRemnantsSweep)
	repeatToFixedPoint(r, minSize, fuseInputsSweep)
}

// fuseRemnantsSweep performs one topological sweep: for each non-frozen
// Group g with at least one consumer, consumers are sorted ascending by
// current size (with an id tiebreak added for determinism beyond what the
// source algorithm itself guarantees — relying, like every other id
// tiebreak in this package, on passes.Build's zero-padded numbering for
// the comparison to agree with build order), and the first non-frozen
// consumer c such that g→c would not create a cycle absorbs g (FuseWith:
// downstream absorbs the upstream remnant). At most one merge per g per
// sweep.
func fuseRemnantsSweep(r *group.Registry, minSize int) bool {
	order, err := r.DAG.TopologicalSort()
	if err != nil {
		return false
	}
	merged := false
	for _, gid := range order {
		if len(r.Groups) <= minSize {
			break
		}
		g, ok := r.Groups[gid]
		if !ok || g.Frozen {
			continue
		}
		consumers := r.Consumers(g)
		if len(consumers) == 0 {
			continue
		}
		sort.SliceStable(consumers, func(i, j int) bool {
			if consumers[i].Size() != consumers[j].Size() {
				return consumers[i].Size() < consumers[j].Size()
			}
			return consumers[i].ID < consumers[j].ID
		})
		for _, c := range consumers {
			if c.Frozen || r.WouldCreateCycle(g, c) {
				continue
			}
			r.FuseWith(g, c)
			merged = true
			break
		}
	}
	return merged
}

// fuseInputsSweep performs one topological sweep: for each non-frozen Group
// g, scans its producers for an unordered pair of non-frozen, mutually
// acyclic producers and merges them into one sibling producer via
// FuseInputs. At most one merge per g per sweep.
func fuseInputsSweep(r *group.Registry, minSize int) bool {
	order, err := r.DAG.TopologicalSort()
	if err != nil {
		return false
	}
	merged := false
	for _, gid := range order {
		if len(r.Groups) <= minSize {
			break
		}
		g, ok := r.Groups[gid]
		if !ok || g.Frozen {
			continue
		}
		prods := r.Producers(g)
		for i := 0; i < len(prods); i++ {
			if prods[i].Frozen {
				continue
			}
			merged2 := false
			for j := i + 1; j < len(prods); j++ {
				if prods[j].Frozen {
					continue
				}
				if !r.MutuallyAcyclic(prods[i], prods[j]) {
					continue
				}
				r.FuseInputs(prods[i], prods[j])
				merged, merged2 = true, true
				break
			}
			if merged2 {
				break
			}
		}
	}
	return merged
}
