// Package kdtree builds a distribution-aware kd-tree over a block-granular
// point store, rearranging points in place.
//
// Quick start:
//
//	pts := store.FromPoints(points, 64)
//	b := kdtree.NewBuilder(pts, kdtree.DefaultConfig())
//	tree, err := b.Build()
//
// The builder uses midpoint splits once a node fits inside one storage
// block and block-aligned median splits above that, and assigns each block
// to a distributed rank while it partitions. The finished tree carries a
// parallel decomposition tree recording which rank range owns which
// subtree.
package kdtree
