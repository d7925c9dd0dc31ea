package kdtree

import "fmt"

// LeafAlignmentError reports a leaf whose point range straddles a storage
// block boundary. This is a configuration defect (leaf size incompatible
// with the store's block size), not a recoverable condition.
type LeafAlignmentError struct {
	Begin, End int
	BlockSize  int
}

func (e *LeafAlignmentError) Error() string {
	return fmt.Sprintf("kdtree: leaf [%d,%d) straddles a block boundary (block size %d)",
		e.Begin, e.End, e.BlockSize)
}

// SplitError reports a split that failed to make progress or to converge.
// Continuing past one would silently mis-partition data, so the build stops.
type SplitError struct {
	Reason     string
	Begin, End int
	BeginRank  int
	EndRank    int
	Dim        int
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("kdtree: %s: range [%d,%d) ranks [%d,%d) dim %d",
		e.Reason, e.Begin, e.End, e.BeginRank, e.EndRank, e.Dim)
}
