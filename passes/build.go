package passes

import (
	"fmt"

	"github.com/katalvlaran/partition-core/group"
	"github.com/katalvlaran/partition-core/opgraph"
)

// Build wraps every operational node of idx in a singleton Group, then
// mirrors every OpNode-level producer/consumer edge between operational
// nodes as a Group-level DAG edge. Non-operational nodes (constants,
// parameters, outputs, and constant-sourced single-input Converts) never
// receive a Group of their own; edges that touch them are skipped since
// they have no owning Group on one end.
//
// Groups are created in ID order "g000000", "g000001", ... following
// idx.OperationalOrder, the topological order the source model supplied
// them in, giving a deterministic numbering that reflects build/graph
// depth rather than the lexical order of source node-ID strings. The
// zero-padded suffix also keeps every later plain string comparison of
// Group IDs (DAG vertex sort, tiebreak rules, ...) in numeric agreement
// for graphs with more than nine operational nodes.
func Build(idx *opgraph.Index) *group.Registry {
	r := group.NewRegistry(idx.Ports)

	ids := idx.OperationalOrder

	nodeToGroupID := make(map[string]string, len(ids))
	for i, id := range ids {
		gid := fmt.Sprintf("g%06d", i)
		nodeToGroupID[id] = gid
		r.Add(group.New(gid, idx.Operational[id]))
	}

	seen := make(map[[2]string]struct{})
	for _, id := range ids {
		srcGID := nodeToGroupID[id]
		for _, consumerID := range idx.ProdCons[id].Consumers {
			dstGID, ok := nodeToGroupID[consumerID]
			if !ok || dstGID == srcGID {
				continue
			}
			key := [2]string{srcGID, dstGID}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			_ = r.DAG.AddEdge(srcGID, dstGID)
		}
	}

	return r
}
