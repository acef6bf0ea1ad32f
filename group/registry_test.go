package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/partition-core/opgraph"
)

func md(kind string) opgraph.MetaDescriptor {
	return opgraph.MetaDescriptor{Kind: kind, Inputs: nil, Outputs: []opgraph.PortMeta{{ElemType: "f32"}}}
}

func TestFuseMergesContentAndRewiresEdges(t *testing.T) {
	b := opgraph.NewBuilder()
	a := b.AddNode("a", "MatMul", md("MatMul"), "")
	bb := b.AddNode("b", "Add", md("Add"), "")
	c := b.AddNode("c", "Relu", md("Relu"), "")
	b.Connect("a", 0, "b", 0)
	b.Connect("b", 0, "c", 0)

	ports := opgraph.NewPortMap()
	ports.Add(opgraph.PortEdge{SrcID: "a", DstID: "b", SrcPort: 0, DstPort: 0})
	ports.Add(opgraph.PortEdge{SrcID: "b", DstID: "c", SrcPort: 0, DstPort: 0})

	r := NewRegistry(ports)
	ga, gb, gc := New("g1", a), New("g2", bb), New("g3", c)
	r.Add(ga)
	r.Add(gb)
	r.Add(gc)
	require.NoError(t, r.DAG.AddEdge("g1", "g2"))
	require.NoError(t, r.DAG.AddEdge("g2", "g3"))

	r.Fuse(ga, gb) // ga survives, absorbs gb
	assert.Equal(t, 2, ga.Size())
	assert.Equal(t, ga, r.NodeToGroup["b"])
	assert.True(t, r.DAG.HasEdge("g1", "g3"))
	assert.False(t, r.DAG.HasVertex("g2"))
	assert.Equal(t, []string{"build", "fuse"}, ga.ReptrackOf("b"))
}

func TestFuseInputsPicksLowerIDSurvivor(t *testing.T) {
	b := opgraph.NewBuilder()
	p1 := b.AddNode("p1", "Const", md("Const"), "")
	p2 := b.AddNode("p2", "Const", md("Const"), "")
	cons := b.AddNode("cons", "Add", md("Add"), "")
	ports := opgraph.NewPortMap()
	r := NewRegistry(ports)
	g1, g2, gc := New("z", p1), New("a", p2), New("c", cons)
	r.Add(g1)
	r.Add(g2)
	r.Add(gc)
	require.NoError(t, r.DAG.AddEdge("z", "c"))
	require.NoError(t, r.DAG.AddEdge("a", "c"))

	survivor := r.FuseInputs(g1, g2)
	assert.Equal(t, "a", survivor.ID)
	assert.Equal(t, 2, survivor.Size())
	assert.False(t, r.DAG.HasVertex("z"))
	assert.True(t, r.DAG.HasEdge("a", "c"))
}

func TestWouldCreateCycleAndMutualAcyclic(t *testing.T) {
	ports := opgraph.NewPortMap()
	r := NewRegistry(ports)
	b := opgraph.NewBuilder()
	a := b.AddNode("a", "K", md("K"), "")
	bb := b.AddNode("b", "K", md("K"), "")
	c := b.AddNode("c", "K", md("K"), "")
	ga, gb, gc := New("a", a), New("b", bb), New("c", c)
	r.Add(ga)
	r.Add(gb)
	r.Add(gc)
	require.NoError(t, r.DAG.AddEdge("a", "b"))
	require.NoError(t, r.DAG.AddEdge("b", "c"))
	require.NoError(t, r.DAG.AddEdge("a", "c"))

	assert.True(t, r.WouldCreateCycle(ga, gc)) // b sits on a second a->c path
	assert.False(t, r.MutuallyAcyclic(ga, gc)) // a already reaches c
}
