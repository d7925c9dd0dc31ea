package kdtree

import "math"

// DRange is a closed interval on one dimension. An empty range has Lo > Hi.
type DRange struct {
	Lo, Hi float64
}

// emptyRange is the identity for union.
func emptyRange() DRange {
	return DRange{Lo: math.Inf(1), Hi: math.Inf(-1)}
}

// Empty reports whether the range contains no values.
func (r DRange) Empty() bool { return r.Lo > r.Hi }

// Width returns Hi-Lo, or 0 for an empty range.
func (r DRange) Width() float64 {
	if r.Empty() {
		return 0
	}
	return r.Hi - r.Lo
}

// Mid returns the midpoint of the range.
func (r DRange) Mid() float64 { return (r.Lo + r.Hi) / 2 }

// Interpolate returns Lo + frac*(Hi-Lo). frac is normally in [0,1].
func (r DRange) Interpolate(frac float64) float64 {
	return r.Lo + frac*(r.Hi-r.Lo)
}

// Bound is a per-dimension interval bound (a bounding hyper-rectangle).
type Bound struct {
	ranges []DRange
}

// NewBound returns an empty bound of the given dimension.
func NewBound(dim int) *Bound {
	b := &Bound{ranges: make([]DRange, dim)}
	b.Reset()
	return b
}

// Dim returns the bound's dimensionality.
func (b *Bound) Dim() int { return len(b.ranges) }

// Reset empties the bound.
func (b *Bound) Reset() {
	for d := range b.ranges {
		b.ranges[d] = emptyRange()
	}
}

// Range returns the interval covered on dimension d.
func (b *Bound) Range(d int) DRange { return b.ranges[d] }

// UnionPoint grows the bound to contain p.
func (b *Bound) UnionPoint(p []float64) {
	for d := range b.ranges {
		if p[d] < b.ranges[d].Lo {
			b.ranges[d].Lo = p[d]
		}
		if p[d] > b.ranges[d].Hi {
			b.ranges[d].Hi = p[d]
		}
	}
}

// UnionBound grows the bound to contain o.
func (b *Bound) UnionBound(o *Bound) {
	for d := range b.ranges {
		if o.ranges[d].Lo < b.ranges[d].Lo {
			b.ranges[d].Lo = o.ranges[d].Lo
		}
		if o.ranges[d].Hi > b.ranges[d].Hi {
			b.ranges[d].Hi = o.ranges[d].Hi
		}
	}
}

// Contains reports whether o lies entirely inside b. An empty o is
// contained in anything.
func (b *Bound) Contains(o *Bound) bool {
	for d := range b.ranges {
		if o.ranges[d].Empty() {
			continue
		}
		if o.ranges[d].Lo < b.ranges[d].Lo || o.ranges[d].Hi > b.ranges[d].Hi {
			return false
		}
	}
	return true
}

// WidestDim returns the dimension with the largest width. The first
// dimension wins ties.
func (b *Bound) WidestDim() int {
	widest := 0
	maxWidth := -1.0
	for d := range b.ranges {
		if w := b.ranges[d].Width(); w > maxWidth {
			maxWidth = w
			widest = d
		}
	}
	return widest
}

// Clone returns an independent copy of the bound.
func (b *Bound) Clone() *Bound {
	o := &Bound{ranges: make([]DRange, len(b.ranges))}
	copy(o.ranges, b.ranges)
	return o
}
