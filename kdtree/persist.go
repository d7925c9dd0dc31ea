package kdtree

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	treeMagic   = "KDTR"
	treeVersion = uint16(1)
)

// treeHeader holds the persisted tree metadata. Statistics are opaque to
// this layer and are not persisted; the file carries the geometry and the
// rank decomposition that downstream traversals need.
type treeHeader struct {
	Magic     [4]byte
	Version   uint16
	Dim       uint16
	NodeCount uint32
	Root      uint32
	Count     uint64
	RankCount uint32
	HasDecomp uint8
	Reserved  [3]byte // pad to 32 bytes
}

// SaveTo writes the tree to a file.
func (t *Tree) SaveTo(path string) error {
	var buf bytes.Buffer
	h := treeHeader{
		Version:   treeVersion,
		Dim:       uint16(t.dim),
		NodeCount: uint32(t.nodes.Len()),
		Root:      uint32(t.root),
		Count:     uint64(t.count),
		RankCount: uint32(t.cfg.RankCount),
	}
	copy(h.Magic[:], treeMagic)
	if t.decomp != nil {
		h.HasDecomp = 1
	}
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		return err
	}
	for i := 0; i < t.nodes.Len(); i++ {
		if err := writeNode(&buf, t.nodes.Node(i), t.nodes.Rank(i), t.dim); err != nil {
			return err
		}
	}
	if t.decomp != nil {
		if err := writeDecomp(&buf, t.decomp); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return err
	}
	return f.Sync()
}

// SaveToAtomic writes the tree to a file atomically (write to path+".tmp",
// then rename). On Windows, the target must not exist for Rename to
// succeed; remove it first.
func (t *Tree) SaveToAtomic(path string) error {
	tmp := path + ".tmp"
	if err := t.SaveTo(tmp); err != nil {
		return err
	}
	_ = os.Remove(path) // ignore error if not exists
	return os.Rename(tmp, path)
}

// LoadTree reads a tree saved with SaveTo. Node statistics are not
// restored; loaded trees serve geometry and decomposition queries only.
func LoadTree(path string) (*Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(raw)
	var h treeHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if string(h.Magic[:]) != treeMagic {
		return nil, errors.New("kdtree: invalid tree file magic")
	}
	if h.Version != treeVersion {
		return nil, fmt.Errorf("kdtree: unsupported tree file version %d", h.Version)
	}
	if h.Root >= h.NodeCount {
		return nil, fmt.Errorf("kdtree: root %d out of range (%d nodes)", h.Root, h.NodeCount)
	}

	nodes := NewNodeStore()
	for i := uint32(0); i < h.NodeCount; i++ {
		if err := readNode(r, nodes, int(h.Dim), int(h.NodeCount)); err != nil {
			return nil, err
		}
	}
	var decomp *DecompNode
	if h.HasDecomp == 1 {
		decomp, err = readDecomp(r, nodes.Len())
		if err != nil {
			return nil, err
		}
	}
	cfg := DefaultConfig()
	cfg.RankCount = int(h.RankCount)
	return &Tree{
		cfg:    cfg.OrDefault(),
		nodes:  nodes,
		root:   int(h.Root),
		decomp: decomp,
		dim:    int(h.Dim),
		count:  int(h.Count),
	}, nil
}

func writeNode(w io.Writer, n *Node, rank, dim int) error {
	rec := []any{
		uint64(n.begin), uint64(n.count), boolByte(n.leaf),
		int32(n.children[0]), int32(n.children[1]), int32(rank),
	}
	for _, v := range rec {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	for d := 0; d < dim; d++ {
		r := n.bound.Range(d)
		if err := binary.Write(w, binary.LittleEndian, r.Lo); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, r.Hi); err != nil {
			return err
		}
	}
	return nil
}

func readNode(r io.Reader, nodes *NodeStore, dim, nodeCount int) error {
	var begin, count uint64
	var leaf uint8
	var child0, child1, rank int32
	for _, v := range []any{&begin, &count, &leaf, &child0, &child1, &rank} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	for _, c := range [2]int32{child0, child1} {
		if c != NilNode && (c < 0 || int(c) >= nodeCount) {
			return fmt.Errorf("kdtree: node child %d out of range (%d nodes)", c, nodeCount)
		}
	}
	i := nodes.Allocate(int(rank))
	n := nodes.StartWrite(i)
	n.begin = int(begin)
	n.count = int(count)
	n.leaf = leaf == 1
	n.children = [2]int{int(child0), int(child1)}
	n.bound = NewBound(dim)
	for d := 0; d < dim; d++ {
		var lo, hi float64
		if err := binary.Read(r, binary.LittleEndian, &lo); err != nil {
			return err
		}
		if err := binary.Read(r, binary.LittleEndian, &hi); err != nil {
			return err
		}
		n.bound.ranges[d] = DRange{Lo: lo, Hi: hi}
	}
	nodes.StopWrite(i)
	return nil
}

func writeDecomp(w io.Writer, d *DecompNode) error {
	rec := []any{
		uint32(d.Index), int32(d.BeginRank), int32(d.EndRank),
		boolByte(!d.IsLeaf()),
	}
	for _, v := range rec {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if d.IsLeaf() {
		return nil
	}
	if err := writeDecomp(w, d.Children[0]); err != nil {
		return err
	}
	return writeDecomp(w, d.Children[1])
}

func readDecomp(r io.Reader, nodeCount int) (*DecompNode, error) {
	var index uint32
	var beginRank, endRank int32
	var hasChildren uint8
	for _, v := range []any{&index, &beginRank, &endRank, &hasChildren} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	if int(index) >= nodeCount {
		return nil, fmt.Errorf("kdtree: decomposition references node %d of %d", index, nodeCount)
	}
	d := &DecompNode{Index: int(index), BeginRank: int(beginRank), EndRank: int(endRank)}
	if hasChildren == 1 {
		var err error
		if d.Children[0], err = readDecomp(r, nodeCount); err != nil {
			return nil, err
		}
		if d.Children[1], err = readDecomp(r, nodeCount); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
