package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tarim-labs/kdpart/bench/gen"
	"github.com/tarim-labs/kdpart/bench/metrics"
	"github.com/tarim-labs/kdpart/kdtree"
	"github.com/tarim-labs/kdpart/kdtree/store"
)

func runStageB(opts stageOpts) {
	const dim = 8
	const blockSize = 256
	const totalPoints = 400_000

	shardCounts := []int{1, 2, 4, 8}

	var rows []metrics.BuildRow
	for _, shards := range shardCounts {
		fmt.Printf("stage B: shards=%d points=%d\n", shards, totalPoints)
		perShard := totalPoints / shards
		stores := make([]store.PointStore, shards)
		for i := range stores {
			stores[i] = store.FromPoints(gen.ClusteredPoints(perShard, dim, 16, opts.seed+int64(i)), blockSize)
		}

		metrics.GC()
		before := metrics.ReadMem()
		t0 := time.Now()
		trees, err := kdtree.BuildForest(stores, opts.cfg, nil, slog.Default())
		if err != nil {
			panic(err)
		}
		buildDur := time.Since(t0)

		nodes := 0
		for _, tr := range trees {
			nodes += tr.Len()
		}
		after := metrics.ReadMem()
		metrics.GC()
		live := metrics.ReadMem()
		rows = append(rows, metrics.BuildRow{
			Points:      totalPoints,
			Dim:         dim,
			BlockSize:   blockSize,
			LeafSize:    opts.cfg.LeafSize,
			Ranks:       opts.cfg.RankCount,
			Shards:      shards,
			BuildDurMs:  float64(buildDur.Nanoseconds()) / 1e6,
			NodesBuilt:  nodes,
			GCs:         after.GCsSince(before),
			HeapAllocMB: float64(live.HeapAlloc) / 1024 / 1024,
		})
		fmt.Printf("  build=%.0fms nodes=%d\n", rows[len(rows)-1].BuildDurMs, nodes)
	}

	path := metrics.ReportPath("bench_report_stage_b_")
	if err := metrics.WriteBuildCSV(rows, path); err != nil {
		panic(err)
	}
	fmt.Printf("report written to %s\n", path)
}
