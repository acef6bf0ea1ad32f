package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/partition-core/directive"
)

func TestLoadDirectivesParsesYAMLFile(t *testing.T) {
	pc, err := LoadDirectives("testdata/directives.yaml")
	require.NoError(t, err)

	assert.Equal(t, 1, pc.MinGraphSize)
	require.Len(t, pc.Avoids, 1)
	assert.Equal(t, directive.AvoidOp, pc.Avoids[0].Kind)
	assert.Equal(t, "MatMul", pc.Avoids[0].Pattern)
	assert.Equal(t, "npu0", pc.Avoids[0].Device)
	_, hasDim0 := pc.PMMDims[0]
	assert.True(t, hasDim0)
}

func TestLoadDirectivesEmptyPathReturnsDefault(t *testing.T) {
	pc, err := LoadDirectives("")
	require.NoError(t, err)
	assert.Equal(t, directive.Default(), pc)
}
