package kdtree

// DecompNode mirrors a spatial node and records the half-open rank range
// [BeginRank, EndRank) assigned to that subtree. Children are present only
// when the rank range spans more than one worker.
type DecompNode struct {
	Index     int // arena index of the mirrored spatial node
	BeginRank int
	EndRank   int
	Children  [2]*DecompNode
}

// IsLeaf reports whether the decomposition stops at this node.
func (d *DecompNode) IsLeaf() bool { return d.Children[0] == nil }

// Ranks returns the number of workers assigned to the subtree.
func (d *DecompNode) Ranks() int { return d.EndRank - d.BeginRank }

// FindRank descends to the decomposition node confined to the given rank,
// or nil if rank is outside this subtree's range.
func (d *DecompNode) FindRank(rank int) *DecompNode {
	if rank < d.BeginRank || rank >= d.EndRank {
		return nil
	}
	n := d
	for !n.IsLeaf() {
		if rank < n.Children[0].EndRank {
			n = n.Children[0]
		} else {
			n = n.Children[1]
		}
	}
	return n
}

// Walk visits the decomposition tree in pre-order.
func (d *DecompNode) Walk(visit func(*DecompNode)) {
	visit(d)
	if d.IsLeaf() {
		return
	}
	d.Children[0].Walk(visit)
	d.Children[1].Walk(visit)
}
