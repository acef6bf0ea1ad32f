package passes

import (
	"github.com/katalvlaran/partition-core/group"
	"github.com/katalvlaran/partition-core/opgraph"
)

// Export is the final partitioning handed to downstream collaborators:
// the surviving Group DAG, the OpNode→Group map, the producer/consumer
// index, the port map, and the repeat-id→layer-match sets produced by
// CleanUpUniques.
type Export struct {
	Registry     *group.Registry
	NodeToGroup  map[string]*group.Group
	NodeToProdCons map[string]opgraph.ProdCons
	Ports        *opgraph.PortMap
	Matches      map[string][][]string
}

// BuildExport assembles an Export from the pipeline's final state.
func BuildExport(r *group.Registry, idx *opgraph.Index, matches map[string][][]string) *Export {
	return &Export{
		Registry:       r,
		NodeToGroup:    r.NodeToGroup,
		NodeToProdCons: idx.ProdCons,
		Ports:          idx.Ports,
		Matches:        matches,
	}
}
