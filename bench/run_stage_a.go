package main

import (
	"fmt"
	"time"

	"github.com/tarim-labs/kdpart/bench/gen"
	"github.com/tarim-labs/kdpart/bench/metrics"
	"github.com/tarim-labs/kdpart/kdtree"
	"github.com/tarim-labs/kdpart/kdtree/store"
)

func runStageA(opts stageOpts) {
	const dim = 8
	const blockSize = 256

	pointCounts := []int{10_000, 50_000, 200_000}
	leafSizes := []int{16, 32, 64}
	rankCounts := []int{1, 4, 16}

	var rows []metrics.BuildRow
	for _, n := range pointCounts {
		points := gen.RandomPoints(n, dim, opts.seed)
		for _, leaf := range leafSizes {
			for _, ranks := range rankCounts {
				fmt.Printf("stage A: points=%d leaf=%d ranks=%d\n", n, leaf, ranks)

				metrics.GC()
				before := metrics.ReadMem()

				pts := store.FromPoints(points, blockSize)
				cfg := &kdtree.Config{LeafSize: leaf, RankCount: ranks}
				b := kdtree.NewBuilder(pts, cfg)
				b.SetStatFactory(kdtree.NewMomentStat(dim))

				t0 := time.Now()
				tree, err := b.Build()
				if err != nil {
					panic(err)
				}
				buildDur := time.Since(t0)

				after := metrics.ReadMem()
				metrics.GC()
				live := metrics.ReadMem()
				rows = append(rows, metrics.BuildRow{
					Points:      n,
					Dim:         dim,
					BlockSize:   blockSize,
					LeafSize:    leaf,
					Ranks:       ranks,
					Shards:      1,
					BuildDurMs:  float64(buildDur.Nanoseconds()) / 1e6,
					NodesBuilt:  tree.Len(),
					GCs:         after.GCsSince(before),
					HeapAllocMB: float64(live.HeapAlloc) / 1024 / 1024,
				})
				fmt.Printf("  build=%.0fms nodes=%d heap=%.1fMB\n",
					rows[len(rows)-1].BuildDurMs, tree.Len(), rows[len(rows)-1].HeapAllocMB)
			}
		}
	}

	path := metrics.ReportPath("bench_report_stage_a_")
	if err := metrics.WriteBuildCSV(rows, path); err != nil {
		panic(err)
	}
	fmt.Printf("report written to %s\n", path)
}
