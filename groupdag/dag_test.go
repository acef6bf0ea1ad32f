package groupdag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEdgeIdempotentNoSelfLoop(t *testing.T) {
	d := New()
	require.NoError(t, d.AddEdge("a", "b"))
	require.NoError(t, d.AddEdge("a", "b"))
	assert.Equal(t, []string{"b"}, d.Successors("a"))
	assert.ErrorIs(t, d.AddEdge("a", "a"), ErrSelfLoop)
}

func TestRemoveVertexDropsIncidentEdges(t *testing.T) {
	d := New()
	require.NoError(t, d.AddEdge("a", "b"))
	require.NoError(t, d.AddEdge("b", "c"))
	require.NoError(t, d.RemoveVertex("b"))
	assert.False(t, d.HasVertex("b"))
	assert.Empty(t, d.Successors("a"))
	assert.Empty(t, d.Predecessors("c"))
}

func TestTopologicalSortOrdersChain(t *testing.T) {
	d := New()
	require.NoError(t, d.AddEdge("a", "b"))
	require.NoError(t, d.AddEdge("b", "c"))
	order, err := d.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestTopologicalSortDetectsCycle(t *testing.T) {
	d := New()
	require.NoError(t, d.AddEdge("a", "b"))
	require.NoError(t, d.AddEdge("b", "a"))
	_, err := d.TopologicalSort()
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestWouldCreateCycle(t *testing.T) {
	d := New()
	require.NoError(t, d.AddEdge("a", "b"))
	require.NoError(t, d.AddEdge("b", "c"))
	require.NoError(t, d.AddEdge("a", "c"))
	// merging a->c directly is fine, c cannot reach a otherwise
	assert.False(t, d.WouldCreateCycle("a", "c"))

	require.NoError(t, d.AddEdge("c", "a"))
	assert.True(t, d.WouldCreateCycle("a", "c"))
}

func TestReachableExcludesDirectEdgeOnly(t *testing.T) {
	d := New()
	require.NoError(t, d.AddEdge("a", "b"))
	assert.False(t, d.Reachable("a", "b", "a", "b"))
	assert.True(t, d.Reachable("a", "b", "", ""))
}
