package kdtree

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tarim-labs/kdpart/kdtree/store"
)

// Tree is a finished spatial tree: a flat node arena plus the parallel
// rank-decomposition tree.
type Tree struct {
	cfg    *Config
	nodes  *NodeStore
	root   int
	decomp *DecompNode
	dim    int
	count  int
}

// Root returns the root node's arena index.
func (t *Tree) Root() int { return t.root }

// Node returns the node at arena index i.
func (t *Tree) Node(i int) *Node { return t.nodes.Node(i) }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return t.nodes.Len() }

// Dim returns the dimensionality of the indexed points.
func (t *Tree) Dim() int { return t.dim }

// Count returns the number of indexed points.
func (t *Tree) Count() int { return t.count }

// Decomposition returns the root of the rank-decomposition tree.
func (t *Tree) Decomposition() *DecompNode { return t.decomp }

// Leaves returns the arena indexes of all leaves, in arena order.
func (t *Tree) Leaves() []int {
	var out []int
	for i := 0; i < t.nodes.Len(); i++ {
		if t.nodes.Node(i).IsLeaf() {
			out = append(out, i)
		}
	}
	return out
}

// Builder constructs a Tree over a point store, rearranging the points in
// place. A build is one irrevocable forward pass: it cannot be resumed
// after a failure, only restarted.
type Builder struct {
	cfg     *Config
	points  store.PointStore
	nodes   *NodeStore
	stats   StatFactory
	log     *slog.Logger
	id      uuid.UUID
	nPoints int
	chunk   int

	// blocks handed to cfg.LocalRank during this build
	localBlocks int
}

// NewBuilder creates a builder. Uses default config if cfg is nil.
func NewBuilder(points store.PointStore, cfg *Config) *Builder {
	return &Builder{
		cfg:    cfg.OrDefault(),
		points: points,
		stats:  func() Statistic { return noopStat{} },
		log:    slog.Default(),
		id:     uuid.New(),
	}
}

// SetStatFactory installs the per-node statistic constructor.
func (b *Builder) SetStatFactory(f StatFactory) {
	if f != nil {
		b.stats = f
	}
}

// SetLogger installs the build logger.
func (b *Builder) SetLogger(l *slog.Logger) {
	if l != nil {
		b.log = l
	}
}

// Build runs the single-pass build and returns the finished tree.
func (b *Builder) Build() (*Tree, error) {
	b.chunk = b.points.BlockSize()
	b.nPoints = b.points.Len()
	dim := b.points.Dim()
	if b.chunk <= 0 {
		return nil, fmt.Errorf("kdtree: build %s: non-positive block size %d", b.id, b.chunk)
	}
	if b.cfg.LeafSize > b.chunk {
		return nil, fmt.Errorf("kdtree: build %s: leaf size %d exceeds block size %d",
			b.id, b.cfg.LeafSize, b.chunk)
	}
	b.nodes = NewNodeStore()
	b.localBlocks = 0

	start := time.Now()
	b.log.Info("tree build started",
		"build", b.id.String(), "points", b.nPoints, "dim", dim,
		"ranks", b.cfg.RankCount, "block_size", b.chunk, "leaf_size", b.cfg.LeafSize)

	bound := NewBound(dim)
	for i := 0; i < b.nPoints; i++ {
		bound.UnionPoint(b.points.At(i))
	}

	root, decomp, err := b.build(0, b.nPoints, 0, b.cfg.RankCount, bound, nil, true)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", b.id, err)
	}

	b.log.Info("tree build finished",
		"build", b.id.String(), "nodes", b.nodes.Len(),
		"local_rank", b.cfg.LocalRank, "local_blocks", b.localBlocks,
		"elapsed", time.Since(start))
	return &Tree{
		cfg:    b.cfg,
		nodes:  b.nodes,
		root:   root,
		decomp: decomp,
		dim:    dim,
		count:  b.nPoints,
	}, nil
}

// build constructs the node covering [beginCol, endCol) with ranks
// [beginRank, endRank), returning its arena index and, when wantDecomp is
// set, its decomposition node. bound must already cover the range; it is
// folded from the partitioning work done during the parent's split.
func (b *Builder) build(beginCol, endCol, beginRank, endRank int, bound *Bound,
	parent *Node, wantDecomp bool) (int, *DecompNode, error) {

	nodeIdx := b.nodes.Allocate(beginRank)
	node := b.nodes.StartWrite(nodeIdx)
	node.begin = beginCol
	node.count = endCol - beginCol
	node.bound = NewBound(b.points.Dim())
	node.bound.UnionBound(bound)
	node.stat = b.stats()

	var leftDecomp, rightDecomp *DecompNode
	if node.count > b.cfg.LeafSize {
		splitDim := node.bound.WidestDim()
		// Even if the widest dimension has zero width, the node must split.
		var err error
		leftDecomp, rightDecomp, err = b.split(node, parent, beginRank, endRank, splitDim, wantDecomp)
		if err != nil {
			return NilNode, nil, err
		}
	} else {
		node.leaf = true
		if node.count > 0 && node.begin/b.chunk != (node.End()-1)/b.chunk {
			return NilNode, nil, &LeafAlignmentError{
				Begin:     node.begin,
				End:       node.End(),
				BlockSize: b.chunk,
			}
		}
		for i := node.begin; i < node.End(); i++ {
			node.stat.Accumulate(b.points.At(i))
		}
	}

	if parent != nil {
		// Fold raw accumulation upward before this node is postprocessed.
		parent.stat.AccumulateChild(node.stat, node.bound, node.count)
	}
	node.stat.Postprocess(node.bound, node.count)

	var decomp *DecompNode
	if wantDecomp {
		decomp = &DecompNode{Index: nodeIdx, BeginRank: beginRank, EndRank: endRank}
		if leftDecomp != nil {
			decomp.Children[0] = leftDecomp
			decomp.Children[1] = rightDecomp
		}
	}

	b.nodes.StopWrite(nodeIdx)
	return nodeIdx, decomp, nil
}
