package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/partition-core/directive"
	"github.com/katalvlaran/partition-core/opgraph"
	"github.com/katalvlaran/partition-core/rewriter"
)

func rmsNormMeta() opgraph.MetaDescriptor {
	return opgraph.MetaDescriptor{Kind: "RMSNorm", Outputs: []opgraph.PortMeta{{ElemType: "f32"}}}
}

// An ISOLATE directive tags every matched Group's IsolatedTag, but leaves
// them open to fusion: a two-node RMSNorm chain still collapses into one
// Group under CollectLHF after tagging.
func TestEarlyRegroupTagsWithoutFreezing(t *testing.T) {
	b := opgraph.NewBuilder()
	b.AddNode("a", "RMSNorm", rmsNormMeta(), "")
	b.AddNode("b", "RMSNorm", rmsNormMeta(), "")
	b.Connect("a", 0, "b", 0)
	idx := opgraph.Build(b.Nodes())

	r := Build(idx)
	pc := directive.PassContext{Isolates: []directive.Isolate{{Pattern: "RMSNorm", Tag: "norm"}}}
	EarlyRegroup(r, pc, rewriter.Registry{}, zap.NewNop())

	require.Equal(t, 2, len(r.Groups))
	for _, g := range r.Groups {
		assert.Equal(t, "norm", g.IsolatedTag)
		assert.False(t, g.Frozen)
	}

	CollectLHF(r, 1)

	require.Equal(t, 1, len(r.Groups))
	for _, g := range r.Groups {
		assert.Equal(t, "norm", g.IsolatedTag)
	}
}

// An unrecognized ISOLATE pattern is a warned-and-skipped no-op: no Group
// is tagged and EarlyRegroup does not error.
func TestEarlyRegroupSkipsUnknownPattern(t *testing.T) {
	b := opgraph.NewBuilder()
	b.AddNode("a", "RMSNorm", rmsNormMeta(), "")
	idx := opgraph.Build(b.Nodes())

	r := Build(idx)
	pc := directive.PassContext{Isolates: []directive.Isolate{{Pattern: "Unknown", Tag: "x"}}}
	EarlyRegroup(r, pc, rewriter.Registry{}, zap.NewNop())

	for _, g := range r.Groups {
		assert.Empty(t, g.IsolatedTag)
	}
}

// afterUniques marks NoFold on every Group whose IsolatedTag is listed in
// pc.NoFolds, and leaves other isolated Groups untouched.
func TestAfterUniquesSetsNoFoldForListedTags(t *testing.T) {
	b := opgraph.NewBuilder()
	b.AddNode("a", "RMSNorm", rmsNormMeta(), "")
	b.AddNode("c", "RMSNorm", rmsNormMeta(), "")
	idx := opgraph.Build(b.Nodes())

	r := Build(idx)
	r.Groups["g000000"].IsolatedTag = "keep-open"
	r.Groups["g000001"].IsolatedTag = "fold-me"

	pc := directive.PassContext{NoFolds: []string{"fold-me"}}
	afterUniques(r, pc)

	assert.False(t, r.Groups["g000000"].NoFold)
	assert.True(t, r.Groups["g000001"].NoFold)
}
