package kdtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarim-labs/kdpart/kdtree/store"
)

func storeOf(vals []float64, blockSize int) *store.MemoryStore {
	points := make([][]float64, len(vals))
	for i, v := range vals {
		points[i] = []float64{v}
	}
	return store.FromPoints(points, blockSize)
}

// checkPartition asserts the partition postcondition: everything in
// [begin, b) satisfies the predicate and everything in [b, begin+count)
// does not.
func checkPartition(t *testing.T, pts store.PointStore, isLeft func([]float64) bool, begin, count, b int) {
	t.Helper()
	require.GreaterOrEqual(t, b, begin)
	require.LessOrEqual(t, b, begin+count)
	for i := begin; i < b; i++ {
		assert.True(t, isLeft(pts.At(i)), "index %d should be left", i)
	}
	for i := b; i < begin+count; i++ {
		assert.False(t, isLeft(pts.At(i)), "index %d should be right", i)
	}
}

func TestPartitionEmpty(t *testing.T) {
	pts := storeOf(nil, 4)
	left := NewBound(1)
	right := NewBound(1)
	b := Partition(leftOf(0, 1.0), 0, 0, pts, left, right)
	assert.Equal(t, 0, b)
	assert.True(t, left.Range(0).Empty())
	assert.True(t, right.Range(0).Empty())
}

func TestPartitionSingle(t *testing.T) {
	pts := storeOf([]float64{3}, 4)
	left := NewBound(1)
	right := NewBound(1)

	b := Partition(leftOf(0, 5.0), 0, 1, pts, left, right)
	assert.Equal(t, 1, b)
	assert.Equal(t, 3.0, left.Range(0).Lo)
	assert.True(t, right.Range(0).Empty())

	left.Reset()
	right.Reset()
	b = Partition(leftOf(0, 1.0), 0, 1, pts, left, right)
	assert.Equal(t, 0, b)
	assert.True(t, left.Range(0).Empty())
	assert.Equal(t, 3.0, right.Range(0).Hi)
}

func TestPartitionAllLeft(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	pts := storeOf(vals, 4)
	left := NewBound(1)
	right := NewBound(1)
	isLeft := leftOf(0, 10.0)

	b := Partition(isLeft, 0, len(vals), pts, left, right)
	assert.Equal(t, len(vals), b)
	checkPartition(t, pts, isLeft, 0, len(vals), b)
	assert.Equal(t, DRange{Lo: 1, Hi: 5}, left.Range(0))
	assert.True(t, right.Range(0).Empty())
}

func TestPartitionAllRight(t *testing.T) {
	vals := []float64{5, 4, 3, 2, 1}
	pts := storeOf(vals, 4)
	left := NewBound(1)
	right := NewBound(1)
	isLeft := leftOf(0, 1.0)

	b := Partition(isLeft, 0, len(vals), pts, left, right)
	assert.Equal(t, 0, b)
	checkPartition(t, pts, isLeft, 0, len(vals), b)
	assert.True(t, left.Range(0).Empty())
	assert.Equal(t, DRange{Lo: 1, Hi: 5}, right.Range(0))
}

func TestPartitionAlternating(t *testing.T) {
	vals := []float64{1, 9, 1, 9, 1, 9, 1, 9}
	pts := storeOf(vals, 4)
	left := NewBound(1)
	right := NewBound(1)
	isLeft := leftOf(0, 5.0)

	b := Partition(isLeft, 0, len(vals), pts, left, right)
	assert.Equal(t, 4, b)
	checkPartition(t, pts, isLeft, 0, len(vals), b)
	assert.Equal(t, DRange{Lo: 1, Hi: 1}, left.Range(0))
	assert.Equal(t, DRange{Lo: 9, Hi: 9}, right.Range(0))
}

func TestPartitionSubrange(t *testing.T) {
	vals := []float64{100, 7, 2, 9, 4, 200}
	pts := storeOf(vals, 4)
	left := NewBound(1)
	right := NewBound(1)
	isLeft := leftOf(0, 5.0)

	b := Partition(isLeft, 1, 4, pts, left, right)
	checkPartition(t, pts, isLeft, 1, 4, b)
	assert.Equal(t, 3, b)
	// untouched outside the range
	assert.Equal(t, 100.0, pts.At(0)[0])
	assert.Equal(t, 200.0, pts.At(5)[0])
}

func TestPartitionRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(64)
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = rng.Float64()
		}
		pts := storeOf(vals, 8)
		pivot := rng.Float64()
		isLeft := leftOf(0, pivot)
		left := NewBound(1)
		right := NewBound(1)

		b := Partition(isLeft, 0, n, pts, left, right)
		checkPartition(t, pts, isLeft, 0, n, b)
		for i := 0; i < b; i++ {
			v := pts.At(i)[0]
			assert.GreaterOrEqual(t, v, left.Range(0).Lo)
			assert.LessOrEqual(t, v, left.Range(0).Hi)
		}
		for i := b; i < n; i++ {
			v := pts.At(i)[0]
			assert.GreaterOrEqual(t, v, right.Range(0).Lo)
			assert.LessOrEqual(t, v, right.Range(0).Hi)
		}
	}
}
