package kdtree

import "github.com/tarim-labs/kdpart/kdtree/store"

// Partition rearranges [begin, begin+count) in place so that a prefix
// satisfies isLeft and the suffix does not, returning the boundary index.
// Every point routed left is folded into left, every point routed right
// into right, so bound computation rides along with the single pass.
//
// Invariant: everything strictly before the left cursor and strictly after
// the right cursor is already on the correct side.
func Partition(isLeft func(p []float64) bool, begin, count int, pts store.PointStore, left, right *Bound) int {
	li := begin
	ri := begin + count - 1

	for {
		for {
			if li > ri {
				return li
			}
			v := pts.At(li)
			if !isLeft(v) {
				right.UnionPoint(v)
				break
			}
			left.UnionPoint(v)
			li++
		}

		for {
			if li > ri {
				return li
			}
			v := pts.At(ri)
			if isLeft(v) {
				left.UnionPoint(v)
				break
			}
			right.UnionPoint(v)
			ri--
		}

		pts.Swap(li, ri)
		ri--
	}
}

// leftOf returns the predicate routing points strictly below value on dim.
func leftOf(dim int, value float64) func(p []float64) bool {
	return func(p []float64) bool { return p[dim] < value }
}
