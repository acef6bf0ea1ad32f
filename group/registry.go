package group

import (
	"sort"

	"github.com/katalvlaran/partition-core/groupdag"
	"github.com/katalvlaran/partition-core/opgraph"
)

// Registry owns every live Group, the Group DAG they sit on, and the
// OpNode→Group map, and is the only place merge primitives are
// implemented. Every pass operates through a Registry.
type Registry struct {
	DAG         *groupdag.DAG
	Groups      map[string]*Group // group ID -> Group
	NodeToGroup map[string]*Group // opnode ID -> owning Group
	Ports       *opgraph.PortMap
}

// NewRegistry returns an empty Registry over ports (the OpNode-level port
// map built once at graph-build time and never mutated).
func NewRegistry(ports *opgraph.PortMap) *Registry {
	return &Registry{
		DAG:         groupdag.New(),
		Groups:      make(map[string]*Group),
		NodeToGroup: make(map[string]*Group),
		Ports:       ports,
	}
}

// Add registers a new Group, wiring its OpNodes into NodeToGroup and
// adding it as a DAG vertex.
func (r *Registry) Add(g *Group) {
	r.Groups[g.ID] = g
	for id := range g.Content {
		r.NodeToGroup[id] = g
	}
	_ = r.DAG.AddVertex(g.ID)
}

// SortedIDs returns every live Group ID, sorted ascending.
func (r *Registry) SortedIDs() []string {
	ids := make([]string, 0, len(r.Groups))
	for id := range r.Groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedByIDDesc returns the Groups in ids, sorted descending by ID — the
// tiebreak tryGrowRepeatingGroups and mergeTriangles use to bias merges
// toward the tail of the model. The plain string compare only agrees with
// numeric/build order because passes.Build mints fixed-width, zero-padded
// IDs ("g000000", "g000001", ...); an unpadded scheme would desync past
// nine Groups.
func SortedByIDDesc(groups []*Group) []*Group {
	out := append([]*Group(nil), groups...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// Producers returns the producer Groups of g, in DAG-sorted order.
func (r *Registry) Producers(g *Group) []*Group {
	ids := r.DAG.Predecessors(g.ID)
	out := make([]*Group, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.Groups[id])
	}
	return out
}

// Consumers returns the consumer Groups of g, in DAG-sorted order.
func (r *Registry) Consumers(g *Group) []*Group {
	ids := r.DAG.Successors(g.ID)
	out := make([]*Group, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.Groups[id])
	}
	return out
}

// WouldCreateCycle answers hasCycle(other): would merging
// the edge producer→consumer create a cycle in the Group DAG?
func (r *Registry) WouldCreateCycle(producer, consumer *Group) bool {
	return r.DAG.WouldCreateCycle(producer.ID, consumer.ID)
}

// MutuallyAcyclic reports whether neither a nor b is reachable from the
// other — the precondition fuseInputs requires of its
// candidate pair.
func (r *Registry) MutuallyAcyclic(a, b *Group) bool {
	return !r.DAG.Reachable(a.ID, b.ID, "", "") && !r.DAG.Reachable(b.ID, a.ID, "", "")
}

// fuseInto merges absorbed's content and edges into survivor, then removes
// absorbed from the DAG. marker is appended to every absorbed OpNode's
// reptrack. survivor's id, isolated tag, and frozen/noFold flags are kept;
// avoided_devices and special_tags are unioned.
func (r *Registry) fuseInto(survivor, absorbed *Group, marker string) {
	for id, n := range absorbed.Content {
		survivor.Content[id] = n
		r.NodeToGroup[id] = survivor
		track := append(append([]string(nil), absorbed.Reptrack[id]...), marker)
		survivor.Reptrack[id] = track
	}
	for d := range absorbed.AvoidedDevices {
		survivor.AvoidedDevices[d] = struct{}{}
	}
	for _, tag := range absorbed.SpecialTags {
		survivor.AddSpecialTag(tag)
	}

	for _, p := range r.DAG.Predecessors(absorbed.ID) {
		if p != survivor.ID {
			_ = r.DAG.AddEdge(p, survivor.ID)
		}
	}
	for _, c := range r.DAG.Successors(absorbed.ID) {
		if c != survivor.ID {
			_ = r.DAG.AddEdge(survivor.ID, c)
		}
	}
	_ = r.DAG.RemoveVertex(absorbed.ID)
	delete(r.Groups, absorbed.ID)
}

// Fuse absorbs other into g: g survives with its id, other is removed.
// Used by collectLHF, where the downstream Group's id survives an upstream
// singleton merge.
func (r *Registry) Fuse(g, other *Group) {
	r.fuseInto(g, other, "fuse")
}

// FuseWith merges g into other: other survives with its id, g is removed.
// Named to match the caller-side spelling "g.fuseWith(c)". In fuseRemnants
// and tryMergeRepeating, downstream (other) absorbs the upstream remnant
// (g); tryMergeTriangles calls it the other way round, so the upstream
// apex absorbs a downstream base.
func (r *Registry) FuseWith(g, other *Group) {
	r.fuseInto(other, g, "fuseWith")
}

// FuseInputs merges p and q into a single Group that replaces both; the
// lower-id Group survives (a deterministic tiebreak; the choice of
// surviving id is left to the pass). Returns the survivor.
func (r *Registry) FuseInputs(p, q *Group) *Group {
	survivor, absorbed := p, q
	if q.ID < p.ID {
		survivor, absorbed = q, p
	}
	r.fuseInto(survivor, absorbed, "fuseInputs")
	return survivor
}
