package kdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarim-labs/kdpart/kdtree/store"
)

// geometricPoints places point i at 2^i on dimension 0. Value interpolation
// over such data lands far from the index goal, so the median search needs
// many rounds to converge.
func geometricPoints(n int) [][]float64 {
	out := make([][]float64, n)
	v := 1.0
	for i := 0; i < n; i++ {
		out[i] = []float64{v}
		v *= 2
	}
	return out
}

func TestMedianSearchRetryCeiling(t *testing.T) {
	saved := maxSplitRounds
	maxSplitRounds = 1
	defer func() { maxSplitRounds = saved }()

	// One interpolation round over geometric data overshoots the goal
	// column without converging.
	pts := store.FromPoints(geometricPoints(16), 4)
	_, err := newTestBuilder(pts, &Config{LeafSize: 2}).Build()
	require.Error(t, err)
	var se *SplitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "median search exhausted retries", se.Reason)
	assert.Equal(t, 0, se.Begin)
	assert.Equal(t, 16, se.End)
	assert.Equal(t, 0, se.BeginRank)
	assert.Equal(t, 1, se.EndRank)
	assert.Equal(t, 0, se.Dim)
}

func TestMedianSearchConvergesWithinCeiling(t *testing.T) {
	pts := store.FromPoints(geometricPoints(64), 8)
	tree, err := newTestBuilder(pts, &Config{LeafSize: 4}).Build()
	require.NoError(t, err)
	validateTree(t, tree, pts, 4)
}
