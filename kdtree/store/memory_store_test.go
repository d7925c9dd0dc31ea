package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreBasics(t *testing.T) {
	s := FromPoints([][]float64{{1, 2}, {3, 4}, {5, 6}}, 2)
	assert.Equal(t, 2, s.Dim())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.BlockSize())
	assert.Equal(t, 2, NumBlocks(s))

	assert.Equal(t, []float64{3, 4}, s.At(1))

	s.Write(1, []float64{7, 8})
	assert.Equal(t, []float64{7, 8}, s.At(1))

	s.Swap(0, 2)
	assert.Equal(t, []float64{5, 6}, s.At(0))
	assert.Equal(t, []float64{1, 2}, s.At(2))
	s.Swap(1, 1)
	assert.Equal(t, []float64{7, 8}, s.At(1))
}

func TestMemoryStoreOwnership(t *testing.T) {
	s := FromPoints([][]float64{{0}, {1}, {2}, {3}}, 2)
	assert.Equal(t, -1, s.Owner(0))

	require.NoError(t, s.GiveOwnership(0, 3))
	assert.Equal(t, 3, s.Owner(0))

	// ownership is irrevocable
	err := s.GiveOwnership(0, 1)
	require.Error(t, err)
	assert.Equal(t, 3, s.Owner(0))

	require.Error(t, s.GiveOwnership(2, 0))
	require.Error(t, s.GiveOwnership(-1, 0))
}
