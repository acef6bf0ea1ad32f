package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/partition-core/group"
	"github.com/katalvlaran/partition-core/opgraph"
)

// buildApexBaseChain wires apex->base->terminal and returns the three
// Groups, registered together in r.
func buildApexBaseChain(r *group.Registry, ports *opgraph.PortMap, apexID, baseID, termID string) (apex, base, term *group.Group) {
	b := opgraph.NewBuilder()
	a := b.AddNode(apexID, "Apex", posMeta("Apex"), "")
	bb := b.AddNode(baseID, "Base", posMeta("Base"), "")
	c := b.AddNode(termID, "Term", posMeta("Term"), "")
	b.Connect(apexID, 0, baseID, 0)
	b.Connect(baseID, 0, termID, 0)

	ports.Add(opgraph.PortEdge{SrcID: apexID, DstID: baseID, SrcPort: 0, DstPort: 0})
	ports.Add(opgraph.PortEdge{SrcID: baseID, DstID: termID, SrcPort: 0, DstPort: 0})

	apex = group.New(apexID, a)
	base = group.New(baseID, bb)
	term = group.New(termID, c)
	r.Add(apex)
	r.Add(base)
	r.Add(term)
	_ = r.DAG.AddEdge(apexID, baseID)
	_ = r.DAG.AddEdge(baseID, termID)
	return apex, base, term
}

func TestTryMergeTrianglesMergesLeafBasesIntoApex(t *testing.T) {
	ports := opgraph.NewPortMap()
	r := group.NewRegistry(ports)

	a1, b1, _ := buildApexBaseChain(r, ports, "ax1", "bs1", "c1")
	a2, b2, _ := buildApexBaseChain(r, ports, "ax2", "bs2", "c2")

	apexes := []*group.Group{a1, a2}
	bases := [][]*group.Group{{b1}, {b2}}

	tok, err := tryMergeTriangles(r, apexes, bases)
	require.NoError(t, err)
	require.NotNil(t, tok)

	assert.Equal(t, 2, a1.Size())
	assert.Equal(t, 2, a2.Size())
	assert.False(t, r.DAG.HasVertex("bs1"))
	assert.False(t, r.DAG.HasVertex("bs2"))
	assert.Equal(t, tok, a1.RepeatTag)
	assert.Equal(t, tok, a2.RepeatTag)
}

func TestTryMergeTrianglesRejectsTooFewApexes(t *testing.T) {
	ports := opgraph.NewPortMap()
	r := group.NewRegistry(ports)
	a1, b1, _ := buildApexBaseChain(r, ports, "ax1", "bs1", "c1")

	tok, err := tryMergeTriangles(r, []*group.Group{a1}, [][]*group.Group{{b1}})
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestTryMergeTrianglesFatalOnCountMismatch(t *testing.T) {
	ports := opgraph.NewPortMap()
	r := group.NewRegistry(ports)
	a1, b1, _ := buildApexBaseChain(r, ports, "ax1", "bs1", "c1")
	a2, _, _ := buildApexBaseChain(r, ports, "ax2", "bs2", "c2")

	_, err := tryMergeTriangles(r, []*group.Group{a1, a2}, [][]*group.Group{{b1}})
	require.Error(t, err)
	var fe *FatalError
	assert.ErrorAs(t, err, &fe)
}

func TestTryMergeRepeatingFatalOnOverlap(t *testing.T) {
	ports := opgraph.NewPortMap()
	r := group.NewRegistry(ports)
	b := opgraph.NewBuilder()
	p := b.AddNode("p", "K", posMeta("K"), "")
	q := b.AddNode("q", "K", posMeta("K"), "")
	cc := b.AddNode("cc", "K", posMeta("K"), "")
	gp := group.New("p", p)
	gq := group.New("q", q)
	gc := group.New("cc", cc)
	r.Add(gp)
	r.Add(gq)
	r.Add(gc)

	// gp appears as both a producer and (aliased) a consumer: an overlap
	// the merge must reject fatally rather than merge silently.
	_, err := tryMergeRepeating(r, []*group.Group{gp, gq}, []*group.Group{gp, gc})
	require.Error(t, err)
}

func TestTryMergeRepeatingDeclinesTriangleShape(t *testing.T) {
	ports := opgraph.NewPortMap()
	r := group.NewRegistry(ports)
	b := opgraph.NewBuilder()
	a := b.AddNode("a", "A", posMeta("A"), "")
	b1 := b.AddNode("b1", "B", posMeta("B"), "")
	b2 := b.AddNode("b2", "B", posMeta("B"), "")
	ga, gb1, gb2 := group.New("a", a), group.New("b1", b1), group.New("b2", b2)
	r.Add(ga)
	r.Add(gb1)
	r.Add(gb2)

	tok, err := tryMergeRepeating(r, []*group.Group{ga, ga}, []*group.Group{gb1, gb2})
	require.NoError(t, err)
	assert.Nil(t, tok)
}
