package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixtureWiresNodesInOrder(t *testing.T) {
	nodes, err := LoadFixture("testdata/graph.json")
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	a, b := nodes[0], nodes[1]
	assert.Equal(t, "A", a.ID())
	assert.Equal(t, "B", b.ID())
	assert.Equal(t, "MatMul", a.Description())

	require.Len(t, b.Inputs(), 1)
	assert.Equal(t, "A", b.Inputs()[0].Producer.ID())
}

func TestLoadFixtureRejectsMissingFile(t *testing.T) {
	_, err := LoadFixture("testdata/does-not-exist.json")
	assert.Error(t, err)
}
