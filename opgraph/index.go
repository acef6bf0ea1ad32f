package opgraph

import "sort"

// ProdCons holds the producer and consumer node-ID sets of one node,
// covering constants and parameters too.
type ProdCons struct {
	Producers []string
	Consumers []string
}

// PortEdge is one directed OpNode→OpNode edge, keyed by (src, dst) node
// IDs, carrying the (source port, destination port) pair. Multiple
// parallel edges between the same two nodes are represented as separate
// entries distinguished by port indices.
type PortEdge struct {
	SrcID, DstID     string
	SrcPort, DstPort int
}

// PortMap remembers, for every directed OpNode→OpNode edge, its
// (source port, destination port) pairs. It is established once at build
// time and never mutated afterward.
type PortMap struct {
	// byPair indexes edges by "srcID\x00dstID" for MIC computation.
	byPair map[string][]PortEdge
}

func pairKey(src, dst string) string { return src + "\x00" + dst }

// NewPortMap builds an empty PortMap.
func NewPortMap() *PortMap {
	return &PortMap{byPair: make(map[string][]PortEdge)}
}

// Add records one OpNode-level edge. Idempotent: adding the same
// (src,dst,srcPort,dstPort) tuple twice is a no-op.
func (pm *PortMap) Add(e PortEdge) {
	key := pairKey(e.SrcID, e.DstID)
	for _, existing := range pm.byPair[key] {
		if existing == e {
			return
		}
	}
	pm.byPair[key] = append(pm.byPair[key], e)
}

// Between returns every recorded port-edge from src to dst, in a
// deterministic (insertion) order.
func (pm *PortMap) Between(src, dst string) []PortEdge {
	return pm.byPair[pairKey(src, dst)]
}

// Index is the operation index: the set of operational OpNodes plus the
// producer/consumer sets of every node, operational or not.
type Index struct {
	// Operational holds every node for which opgraph.IsOp returned true,
	// keyed by ID.
	Operational map[string]Node
	// OperationalOrder lists the same IDs as Operational, in the
	// topological order Build received them in. passes.Build assigns
	// initial group IDs by walking this slice, so a Group's numeric
	// suffix reflects its depth in the source model rather than the
	// lexical order of its node ID string.
	OperationalOrder []string
	// ProdCons maps every node ID (operational or not) to its producer and
	// consumer ID sets.
	ProdCons map[string]ProdCons
	// Ports is the port map built alongside the index.
	Ports *PortMap
}

// Build constructs the operation index and port map by iterating nodes in
// the topological order supplied by the (external) source model. The
// Group-wrapping step that turns this index into a Registry is the
// caller's (passes.Build's) responsibility.
func Build(topoOrdered []Node) *Index {
	idx := &Index{
		Operational: make(map[string]Node),
		ProdCons:    make(map[string]ProdCons),
		Ports:       NewPortMap(),
	}
	byID := make(map[string]Node, len(topoOrdered))
	for _, n := range topoOrdered {
		byID[n.ID()] = n
		if IsOp(n) {
			idx.Operational[n.ID()] = n
			idx.OperationalOrder = append(idx.OperationalOrder, n.ID())
		}
	}
	for _, n := range topoOrdered {
		id := n.ID()
		pc := idx.ProdCons[id]
		for dstPort, in := range n.Inputs() {
			if in.Producer == nil {
				continue
			}
			pid := in.Producer.ID()
			pc.Producers = appendUnique(pc.Producers, pid)
			idx.Ports.Add(PortEdge{SrcID: pid, DstID: id, SrcPort: in.SourcePort, DstPort: dstPort})

			ppc := idx.ProdCons[pid]
			ppc.Consumers = appendUnique(ppc.Consumers, id)
			idx.ProdCons[pid] = ppc
		}
		idx.ProdCons[id] = pc
	}
	for id, pc := range idx.ProdCons {
		sort.Strings(pc.Producers)
		sort.Strings(pc.Consumers)
		idx.ProdCons[id] = pc
	}
	return idx
}

func appendUnique(ss []string, s string) []string {
	for _, existing := range ss {
		if existing == s {
			return ss
		}
	}
	return append(ss, s)
}
