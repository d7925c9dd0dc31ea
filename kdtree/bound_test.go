package kdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundEmpty(t *testing.T) {
	b := NewBound(2)
	for d := 0; d < 2; d++ {
		assert.True(t, b.Range(d).Empty())
		assert.Equal(t, 0.0, b.Range(d).Width())
	}
}

func TestBoundUnionPoint(t *testing.T) {
	b := NewBound(2)
	b.UnionPoint([]float64{1, 5})
	b.UnionPoint([]float64{3, -2})

	assert.Equal(t, DRange{Lo: 1, Hi: 3}, b.Range(0))
	assert.Equal(t, DRange{Lo: -2, Hi: 5}, b.Range(1))

	b.Reset()
	assert.True(t, b.Range(0).Empty())
}

func TestBoundUnionBound(t *testing.T) {
	a := NewBound(1)
	a.UnionPoint([]float64{2})
	o := NewBound(1)
	o.UnionPoint([]float64{-1})
	o.UnionPoint([]float64{1})

	a.UnionBound(o)
	assert.Equal(t, DRange{Lo: -1, Hi: 2}, a.Range(0))

	// union with an empty bound is a no-op
	a.UnionBound(NewBound(1))
	assert.Equal(t, DRange{Lo: -1, Hi: 2}, a.Range(0))
}

func TestBoundContains(t *testing.T) {
	outer := NewBound(2)
	outer.UnionPoint([]float64{0, 0})
	outer.UnionPoint([]float64{10, 10})

	inner := NewBound(2)
	inner.UnionPoint([]float64{1, 1})
	inner.UnionPoint([]float64{9, 9})
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
	assert.True(t, outer.Contains(NewBound(2)))
}

func TestWidestDimFirstWinsTies(t *testing.T) {
	b := NewBound(3)
	b.UnionPoint([]float64{0, 0, 0})
	b.UnionPoint([]float64{2, 2, 1})
	assert.Equal(t, 0, b.WidestDim())

	// zero-width everywhere still picks the first dimension
	z := NewBound(3)
	z.UnionPoint([]float64{4, 4, 4})
	assert.Equal(t, 0, z.WidestDim())
}

func TestDRangeInterpolate(t *testing.T) {
	r := DRange{Lo: 10, Hi: 20}
	assert.Equal(t, 10.0, r.Interpolate(0))
	assert.Equal(t, 20.0, r.Interpolate(1))
	assert.Equal(t, 15.0, r.Interpolate(0.5))
	assert.Equal(t, 15.0, r.Mid())
	assert.Equal(t, 10.0, r.Width())
}
