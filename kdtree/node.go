package kdtree

import "fmt"

// NilNode marks an absent child index.
const NilNode = -1

// Node is one spatial-tree node. It owns the half-open index range
// [Begin, End) into the point store; leaves have no children, internal
// nodes have exactly two with contiguous sub-ranges covering the parent's.
type Node struct {
	index    int
	begin    int
	count    int
	bound    *Bound
	stat     Statistic
	leaf     bool
	children [2]int
}

// Index returns the node's position in its arena.
func (n *Node) Index() int { return n.index }

// Begin returns the first point index owned by the node.
func (n *Node) Begin() int { return n.begin }

// End returns one past the last point index owned by the node.
func (n *Node) End() int { return n.begin + n.count }

// Count returns the number of points in the node's range.
func (n *Node) Count() int { return n.count }

// Bound returns the node's bounding hyper-rectangle.
func (n *Node) Bound() *Bound { return n.bound }

// Stat returns the node's statistic (nil until the node is built).
func (n *Node) Stat() Statistic { return n.stat }

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool { return n.leaf }

// Child returns the i-th child's arena index (NilNode for leaves).
func (n *Node) Child(i int) int { return n.children[i] }

// Children returns both child arena indexes.
func (n *Node) Children() (left, right int) {
	return n.children[0], n.children[1]
}

// NodeStore is a flat arena of nodes addressed by stable integer indices.
// Allocation is sequential; the rank passed to Allocate records which
// worker the node is biased toward for storage locality.
type NodeStore struct {
	nodes   []*Node
	ranks   []int
	writing []bool
}

// NewNodeStore creates an empty arena.
func NewNodeStore() *NodeStore {
	return &NodeStore{}
}

// Allocate appends a fresh node biased toward rank and returns its index.
func (s *NodeStore) Allocate(rank int) int {
	i := len(s.nodes)
	s.nodes = append(s.nodes, &Node{
		index:    i,
		children: [2]int{NilNode, NilNode},
	})
	s.ranks = append(s.ranks, rank)
	s.writing = append(s.writing, false)
	return i
}

// StartWrite brackets exclusive mutation of node i. Nested writes of
// distinct nodes are allowed; a double start on the same node is a
// programming error.
func (s *NodeStore) StartWrite(i int) *Node {
	if s.writing[i] {
		panic(fmt.Sprintf("kdtree: node %d already being written", i))
	}
	s.writing[i] = true
	return s.nodes[i]
}

// StopWrite ends the exclusive mutation of node i.
func (s *NodeStore) StopWrite(i int) {
	if !s.writing[i] {
		panic(fmt.Sprintf("kdtree: node %d is not being written", i))
	}
	s.writing[i] = false
}

// Node returns the node at index i for reading.
func (s *NodeStore) Node(i int) *Node { return s.nodes[i] }

// Rank returns the rank node i was allocated toward.
func (s *NodeStore) Rank(i int) int { return s.ranks[i] }

// Len returns the number of allocated nodes.
func (s *NodeStore) Len() int { return len(s.nodes) }
