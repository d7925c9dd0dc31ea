package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// MmapStore is a PointStore backed by an mmap'd point file. The mapping is
// read-write: tree construction rearranges the points directly in the file.
type MmapStore struct {
	f         *os.File
	m         mmap.MMap
	data      []float64
	dim       int
	count     int
	blockSize int
	owners    map[int]int
}

// Create writes the contents of src to a new point file at path.
func Create(path string, src PointStore) error {
	h := &Header{
		Dim:        uint16(src.Dim()),
		BlockSize:  uint32(src.BlockSize()),
		Count:      uint64(src.Len()),
		DataOffset: uint64(AlignUp(HeaderSize, PageAlign)),
	}
	headerBytes, err := EncodeHeader(h)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(headerBytes); err != nil {
		return err
	}
	pad := make([]byte, int64(h.DataOffset)-HeaderSize)
	if _, err := f.Write(pad); err != nil {
		return err
	}
	for i := 0; i < src.Len(); i++ {
		if err := binary.Write(f, binary.LittleEndian, src.At(i)); err != nil {
			return err
		}
	}
	return f.Sync()
}

// OpenMmap opens a point file for in-place building.
func OpenMmap(path string) (*MmapStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	h, err := DecodeHeader(m)
	if err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}
	dataEnd := int64(h.DataOffset) + int64(h.Count)*int64(h.Dim)*8
	if int64(len(m)) < dataEnd {
		m.Unmap()
		f.Close()
		return nil, fmt.Errorf("point file truncated: %d < %d", len(m), dataEnd)
	}
	advise(m)
	var data []float64
	if h.Count > 0 {
		ptr := unsafe.Pointer(&m[h.DataOffset])
		data = unsafe.Slice((*float64)(ptr), int(h.Count)*int(h.Dim))
	}
	return &MmapStore{
		f:         f,
		m:         m,
		data:      data,
		dim:       int(h.Dim),
		count:     int(h.Count),
		blockSize: int(h.BlockSize),
		owners:    make(map[int]int),
	}, nil
}

// Dim implements PointStore.
func (s *MmapStore) Dim() int { return s.dim }

// Len implements PointStore.
func (s *MmapStore) Len() int { return s.count }

// BlockSize implements PointStore.
func (s *MmapStore) BlockSize() int { return s.blockSize }

// At implements PointStore.
func (s *MmapStore) At(i int) []float64 {
	return s.data[i*s.dim : (i+1)*s.dim]
}

// Write implements PointStore.
func (s *MmapStore) Write(i int, p []float64) {
	copy(s.data[i*s.dim:(i+1)*s.dim], p)
}

// Swap implements PointStore.
func (s *MmapStore) Swap(i, j int) {
	if i == j {
		return
	}
	a := s.At(i)
	b := s.At(j)
	for k := 0; k < s.dim; k++ {
		a[k], b[k] = b[k], a[k]
	}
}

// GiveOwnership implements PointStore. Ownership is a build-time assignment
// and is not persisted to the file.
func (s *MmapStore) GiveOwnership(block, rank int) error {
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
func (s *MmapStore) Owner(block int) int {
	if rank, ok := s.owners[block]; ok {
		return rank
	}
	return -1
}

// Flush writes dirty pages back to the file.
func (s *MmapStore) Flush() error {
	if s.m == nil {
		return nil
	}
	return s.m.Flush()
}

// Close flushes, unmaps and closes the file.
func (s *MmapStore) Close() error {
	if s.m != nil {
		if err := s.m.Flush(); err != nil {
			return err
		}
		if err := s.m.Unmap(); err != nil {
			return err
		}
		s.m = nil
		s.data = nil
	}
	if s.f != nil {
		err := s.f.Close()
		s.f = nil
		return err
	}
	return nil
}
