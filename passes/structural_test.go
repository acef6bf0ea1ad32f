package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/partition-core/opgraph"
)

func chainMeta(tag string) opgraph.MetaDescriptor {
	return opgraph.MetaDescriptor{Kind: tag, Outputs: []opgraph.PortMeta{{ElemType: "f32"}}}
}

func buildChain(b *opgraph.Builder, ids []string) {
	for i, id := range ids {
		b.AddNode(id, "K", chainMeta("K"), "")
		if i > 0 {
			b.Connect(ids[i-1], 0, id, 0)
		}
	}
}

// Chain A->B->C->D, min_graph_size=1. collectLHF collapses to one Group.
func TestCollectLHFCollapsesChain(t *testing.T) {
	b := opgraph.NewBuilder()
	buildChain(b, []string{"A", "B", "C", "D"})
	idx := opgraph.Build(b.Nodes())

	r := Build(idx)
	require.Equal(t, 4, len(r.Groups))

	CollectLHF(r, 1)

	require.Equal(t, 1, len(r.Groups))
	for _, g := range r.Groups {
		assert.Equal(t, 4, g.Size())
	}
}

// min_graph_size=4 with 4 ops in a chain: collectLHF performs 0 merges.
func TestCollectLHFRespectsMinGraphSize(t *testing.T) {
	b := opgraph.NewBuilder()
	buildChain(b, []string{"A", "B", "C", "D"})
	idx := opgraph.Build(b.Nodes())

	r := Build(idx)
	CollectLHF(r, 4)

	assert.Equal(t, 4, len(r.Groups))
}

// An already fully-fused chain runs a second CollectLHF with zero further
// merges: the pass is idempotent once it reaches a fixed point.
func TestCollectLHFIdempotentAtFixedPoint(t *testing.T) {
	b := opgraph.NewBuilder()
	buildChain(b, []string{"A", "B", "C", "D"})
	idx := opgraph.Build(b.Nodes())

	r := Build(idx)
	CollectLHF(r, 1)
	require.Equal(t, 1, len(r.Groups))

	CollectLHF(r, 1)
	assert.Equal(t, 1, len(r.Groups))
}

// fuseInputs: two disjoint producers feeding one consumer merge into a
// single sibling producer.
func TestFuseInputsMergesSiblingProducers(t *testing.T) {
	b := opgraph.NewBuilder()
	b.AddNode("p1", "Const", chainMeta("Const"), "")
	b.AddNode("p2", "Const", chainMeta("Const"), "")
	b.AddNode("cons", "Add", chainMeta("Add"), "")
	b.Connect("p1", 0, "cons", 0)
	b.Connect("p2", 0, "cons", 1)
	idx := opgraph.Build(b.Nodes())

	r := Build(idx)
	require.Equal(t, 3, len(r.Groups))

	repeatToFixedPoint(r, 1, fuseInputsSweep)

	assert.Equal(t, 2, len(r.Groups))
}
