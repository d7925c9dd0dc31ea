package store

import "fmt"

// MemoryStore is a heap-backed PointStore. Layout: [p0_0..p0_d, p1_0..p1_d, ...]
type MemoryStore struct {
	data      []float64
	dim       int
	count     int
	blockSize int
	owners    map[int]int
}

// NewMemoryStore creates an empty store for n points of the given dimension.
func NewMemoryStore(dim, blockSize, n int) *MemoryStore {
	if blockSize <= 0 {
		blockSize = 64
	}
	return &MemoryStore{
		data:      make([]float64, n*dim),
		dim:       dim,
		count:     n,
		blockSize: blockSize,
		owners:    make(map[int]int),
	}
}

// FromPoints creates a store holding a copy of the given points.
func FromPoints(points [][]float64, blockSize int) *MemoryStore {
	if len(points) == 0 {
		return NewMemoryStore(0, blockSize, 0)
	}
	s := NewMemoryStore(len(points[0]), blockSize, len(points))
	for i, p := range points {
		s.Write(i, p)
	}
	return s
}

// Dim implements PointStore.
func (s *MemoryStore) Dim() int { return s.dim }

// Len implements PointStore.
func (s *MemoryStore) Len() int { return s.count }

// BlockSize implements PointStore.
func (s *MemoryStore) BlockSize() int { return s.blockSize }

// At implements PointStore.
func (s *MemoryStore) At(i int) []float64 {
	return s.data[i*s.dim : (i+1)*s.dim]
}

// Write implements PointStore.
func (s *MemoryStore) Write(i int, p []float64) {
	copy(s.data[i*s.dim:(i+1)*s.dim], p)
}

// Swap implements PointStore.
func (s *MemoryStore) Swap(i, j int) {
	if i == j {
		return
	}
	a := s.At(i)
	b := s.At(j)
	for k := 0; k < s.dim; k++ {
		a[k], b[k] = b[k], a[k]
	}
}

// GiveOwnership implements PointStore.
func (s *MemoryStore) GiveOwnership(block, rank int) error {
	if block < 0 || block >= NumBlocks(s) {
		return fmt.Errorf("store: no such block %d", block)
	}
	if prev, ok := s.owners[block]; ok {
		return fmt.Errorf("store: block %d already owned by rank %d", block, prev)
	}
	s.owners[block] = rank
	return nil
}

// Owner implements PointStore.
func (s *MemoryStore) Owner(block int) int {
	if rank, ok := s.owners[block]; ok {
		return rank
	}
	return -1
}
