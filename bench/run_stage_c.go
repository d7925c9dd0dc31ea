package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tarim-labs/kdpart/bench/gen"
	"github.com/tarim-labs/kdpart/bench/metrics"
	"github.com/tarim-labs/kdpart/kdtree"
	"github.com/tarim-labs/kdpart/kdtree/store"
)

// Stage C compares an in-memory build against the same build over an
// mmap'd point file.
func runStageC(opts stageOpts) {
	const dim = 8
	const blockSize = 256
	const n = 200_000

	points := gen.RandomPoints(n, dim, opts.seed)
	dir, err := os.MkdirTemp("", "kdpart-bench-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	var rows []metrics.BuildRow

	fmt.Printf("stage C: heap build points=%d\n", n)
	heap := store.FromPoints(points, blockSize)
	rows = append(rows, buildOnce(heap, opts, n, dim, blockSize))

	fmt.Printf("stage C: mmap build points=%d\n", n)
	path := filepath.Join(dir, "points.kdp")
	if err := store.Create(path, store.FromPoints(points, blockSize)); err != nil {
		panic(err)
	}
	mm, err := store.OpenMmap(path)
	if err != nil {
		panic(err)
	}
	defer mm.Close()
	rows = append(rows, buildOnce(mm, opts, n, dim, blockSize))

	out := metrics.ReportPath("bench_report_stage_c_")
	if err := metrics.WriteBuildCSV(rows, out); err != nil {
		panic(err)
	}
	fmt.Printf("report written to %s\n", out)
}

func buildOnce(pts store.PointStore, opts stageOpts, n, dim, blockSize int) metrics.BuildRow {
	metrics.GC()
	before := metrics.ReadMem()
	t0 := time.Now()
	tree, err := kdtree.NewBuilder(pts, opts.cfg).Build()
	if err != nil {
		panic(err)
	}
	buildDur := time.Since(t0)
	after := metrics.ReadMem()
	metrics.GC()
	live := metrics.ReadMem()
	fmt.Printf("  build=%.0fms nodes=%d\n", float64(buildDur.Nanoseconds())/1e6, tree.Len())
	return metrics.BuildRow{
		Points:      n,
		Dim:         dim,
		BlockSize:   blockSize,
		LeafSize:    opts.cfg.LeafSize,
		Ranks:       opts.cfg.RankCount,
		Shards:      1,
		BuildDurMs:  float64(buildDur.Nanoseconds()) / 1e6,
		NodesBuilt:  tree.Len(),
		GCs:         after.GCsSince(before),
		HeapAllocMB: float64(live.HeapAlloc) / 1024 / 1024,
	}
}
