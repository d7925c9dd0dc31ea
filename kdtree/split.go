package kdtree

// maxSplitRounds bounds the median interpolation search; convergence is
// empirical, so exhaustion is surfaced as a build failure. Variable so
// tests can lower it.
var maxSplitRounds = 64

// split divides node's range on splitDim and builds both children. For
// ranges that fit inside one storage block it splits at the value midpoint;
// above that it runs an iterative work-balanced median search targeting a
// block-aligned goal column. Returns the children's decomposition nodes
// when they were requested and produced.
func (b *Builder) split(node *Node, parent *Node, beginRank, endRank, splitDim int,
	wantDecomp bool) (*DecompNode, *DecompNode, error) {

	beginCol := node.begin
	endCol := node.End()
	splitRank := (beginRank + endRank) / 2
	current := node.bound.Range(splitDim)
	dim := b.points.Dim()
	finalLeft := NewBound(dim)
	finalRight := NewBound(dim)
	var splitCol int

	if beginCol%b.chunk == 0 && (parent == nil || parent.begin != beginCol) {
		// First visit to this block boundary: the block starting here is
		// fully claimed by the leftmost rank of this subtree.
		block := beginCol / b.chunk
		if err := b.points.GiveOwnership(block, beginRank); err != nil {
			return nil, nil, err
		}
		if beginRank == b.cfg.LocalRank {
			b.localBlocks++
		}
		b.log.Debug("block ownership handed off",
			"build", b.id.String(), "block", block, "rank", beginRank,
			"columns_reached", endCol, "total", b.nPoints)
	}

	if node.count <= b.chunk {
		if current.Width() == 0 {
			// All points coincide on the split dimension (and therefore on
			// every dimension, since this one is the widest). Geometry
			// cannot discriminate, so split the index range down the middle
			// to keep the tree depth and leaf sizes bounded.
			splitCol = (beginCol + endCol) / 2
			finalLeft.UnionBound(node.bound)
			finalRight.UnionBound(node.bound)
		} else {
			splitCol = Partition(leftOf(splitDim, current.Mid()),
				beginCol, endCol-beginCol, b.points, finalLeft, finalRight)
			if splitCol == beginCol || splitCol == endCol {
				return nil, nil, &SplitError{
					Reason:    "midpoint split made no progress",
					Begin:     beginCol,
					End:       endCol,
					BeginRank: beginRank,
					EndRank:   endRank,
					Dim:       splitDim,
				}
			}
		}
	} else {
		var goalCol int
		if endRank <= beginRank+1 {
			// One rank; plain median split.
			goalCol = (beginCol + endCol) / 2
		} else {
			// Multiple ranks: place the goal by global proportion so that
			// rounding errors do not compound across recursion levels.
			goalCol = int(uint64(splitRank) * uint64(b.nPoints) / uint64(b.cfg.RankCount))
		}
		// Align the goal down to a block boundary, kept interior to the
		// range so the split always makes progress.
		goalCol = goalCol / b.chunk * b.chunk
		lo := beginCol + b.chunk
		hi := (endCol - 1) / b.chunk * b.chunk
		if goalCol < lo {
			goalCol = lo
		}
		if goalCol > hi {
			goalCol = hi
		}

		left := NewBound(dim)
		right := NewBound(dim)
		activeBegin := beginCol
		activeEnd := endCol
		converged := false
		for round := 0; round < maxSplitRounds; round++ {
			// Interpolate a trial value proportional to how far the goal
			// sits inside the active range; this converges quickly in
			// practice.
			frac := float64(goalCol-activeBegin) / float64(activeEnd-activeBegin)
			splitVal := current.Interpolate(frac)

			left.Reset()
			right.Reset()
			splitCol = Partition(leftOf(splitDim, splitVal),
				activeBegin, activeEnd-activeBegin, b.points, left, right)

			if splitCol == goalCol {
				finalLeft.UnionBound(left)
				finalRight.UnionBound(right)
				converged = true
				break
			} else if splitCol < goalCol {
				finalLeft.UnionBound(left)
				current = right.Range(splitDim)
				if current.Width() == 0 {
					// The remainder is indistinguishable on this dimension;
					// force it across the goal and treat it as belonging to
					// both sides' bounds.
					finalRight.UnionBound(right)
					finalLeft.UnionBound(right)
					splitCol = goalCol
					converged = true
					break
				}
				activeBegin = splitCol
			} else {
				finalRight.UnionBound(right)
				current = left.Range(splitDim)
				if current.Width() == 0 {
					finalLeft.UnionBound(left)
					finalRight.UnionBound(left)
					splitCol = goalCol
					converged = true
					break
				}
				activeEnd = splitCol
			}
		}
		if !converged {
			return nil, nil, &SplitError{
				Reason:    "median search exhausted retries",
				Begin:     beginCol,
				End:       endCol,
				BeginRank: beginRank,
				EndRank:   endRank,
				Dim:       splitDim,
			}
		}
	}

	// Children of a single-rank subtree need no decomposition nodes.
	childDecomp := wantDecomp && endRank-beginRank > 1

	leftIdx, leftDecomp, err := b.build(beginCol, splitCol,
		beginRank, splitRank, finalLeft, node, childDecomp)
	if err != nil {
		return nil, nil, err
	}
	rightIdx, rightDecomp, err := b.build(splitCol, endCol,
		splitRank, endRank, finalRight, node, childDecomp)
	if err != nil {
		return nil, nil, err
	}
	node.children[0] = leftIdx
	node.children[1] = rightIdx
	return leftDecomp, rightDecomp, nil
}
