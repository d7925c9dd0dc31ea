package store

// PointStore is random-access read/write/swap storage over point indices.
// Points are fixed-dimension float64 vectors laid out in contiguous blocks
// of BlockSize points each; tree construction rearranges them in place and
// assigns block ownership to distributed ranks as it goes.
type PointStore interface {
	// Dim returns the dimensionality of every stored point.
	Dim() int
	// Len returns the total number of points.
	Len() int
	// BlockSize returns the number of points per storage block.
	BlockSize() int
	// At returns the point at index i. The slice aliases store memory and
	// is valid until the next Write or Swap touching i.
	At(i int) []float64
	// Write replaces the point at index i.
	Write(i int, p []float64)
	// Swap exchanges the points at indices i and j.
	Swap(i, j int)
	// GiveOwnership irrevocably assigns the given block to rank.
	// A second call for the same block is an error.
	GiveOwnership(block, rank int) error
	// Owner returns the rank that owns block, or -1 if unassigned.
	Owner(block int) int
}

// NumBlocks returns the number of blocks needed to hold s.Len() points.
func NumBlocks(s PointStore) int {
	bs := s.BlockSize()
	if bs <= 0 {
		return 0
	}
	return (s.Len() + bs - 1) / bs
}
