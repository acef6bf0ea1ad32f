package group

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/partition-core/opgraph"
)

func TestComputeMICCanonicalOrder(t *testing.T) {
	b := opgraph.NewBuilder()
	a1 := b.AddNode("a1", "K", opgraph.MetaDescriptor{Outputs: []opgraph.PortMeta{{ElemType: "f32", Shape: []int64{4}}}}, "")
	b1 := b.AddNode("b1", "K", opgraph.MetaDescriptor{Inputs: []opgraph.PortMeta{{ElemType: "f32", Shape: []int64{4}}}}, "")

	ports := opgraph.NewPortMap()
	ports.Add(opgraph.PortEdge{SrcID: "a1", DstID: "b1", SrcPort: 0, DstPort: 0})

	ga := New("ga", a1)
	gb := New("gb", b1)

	mic := Compute(ga, gb, ports)
	assert.Len(t, mic, 1)
	assert.Equal(t, "f32[4]->f32[4]", mic.Key())

	// Identical boundary shape from a different pair produces an equal key.
	a2 := b.AddNode("a2", "K", opgraph.MetaDescriptor{Outputs: []opgraph.PortMeta{{ElemType: "f32", Shape: []int64{4}}}}, "")
	b2 := b.AddNode("b2", "K", opgraph.MetaDescriptor{Inputs: []opgraph.PortMeta{{ElemType: "f32", Shape: []int64{4}}}}, "")
	ports.Add(opgraph.PortEdge{SrcID: "a2", DstID: "b2", SrcPort: 0, DstPort: 0})
	ga2 := New("ga2", a2)
	gb2 := New("gb2", b2)
	mic2 := Compute(ga2, gb2, ports)
	assert.Equal(t, mic.Key(), mic2.Key())
}
