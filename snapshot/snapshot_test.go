package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/partition-core/directive"
	"github.com/katalvlaran/partition-core/opgraph"
)

func TestRunCollapsesChainAndValidates(t *testing.T) {
	b := opgraph.NewBuilder()
	md := opgraph.MetaDescriptor{Kind: "K", Outputs: []opgraph.PortMeta{{ElemType: "f32"}}}
	for i, id := range []string{"A", "B", "C", "D"} {
		b.AddNode(id, "K", md, "")
		if i > 0 {
			b.Connect([]string{"A", "B", "C", "D"}[i-1], 0, id, 0)
		}
	}

	snap := New(b.Nodes(), directive.PassContext{MinGraphSize: 1})
	exp, err := snap.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, len(exp.Registry.Groups))
}

func TestRunIsDeterministicAcrossInvocations(t *testing.T) {
	build := func() []opgraph.Node {
		b := opgraph.NewBuilder()
		md := opgraph.MetaDescriptor{Kind: "K", Outputs: []opgraph.PortMeta{{ElemType: "f32"}}}
		b.AddNode("A1", "K", md, "")
		b.AddNode("B1", "K", md, "")
		b.Connect("A1", 0, "B1", 0)
		b.AddNode("A2", "K", md, "")
		b.AddNode("B2", "K", md, "")
		b.Connect("A2", 0, "B2", 0)
		return b.Nodes()
	}

	pc := directive.PassContext{MinGraphSize: 1, KeepBlocks: 2, KeepBlockSize: 1}
	exp1, err := New(build(), pc).Run(context.Background())
	require.NoError(t, err)
	exp2, err := New(build(), pc).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(exp1.Registry.Groups), len(exp2.Registry.Groups))
	assert.Equal(t, len(exp1.Matches), len(exp2.Matches))
}
