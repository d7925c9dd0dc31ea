package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BuildRow is one benchmark measurement of a tree build.
type BuildRow struct {
	Points      int
	Dim         int
	BlockSize   int
	LeafSize    int
	Ranks       int
	Shards      int
	BuildDurMs  float64
	NodesBuilt  int
	GCs         uint32
	HeapAllocMB float64
}

// ReportPath returns a timestamped report path in the working directory.
func ReportPath(prefix string) string {
	return filepath.Join(".", fmt.Sprintf("%s%s.csv", prefix, time.Now().Format("20060102_150405")))
}

// WriteBuildCSV writes build measurements to a CSV report.
func WriteBuildCSV(rows []BuildRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"points", "dim", "block_size", "leaf_size", "ranks", "shards",
		"build_ms", "nodes", "gcs", "heap_alloc_mb"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			fmt.Sprint(r.Points), fmt.Sprint(r.Dim), fmt.Sprint(r.BlockSize),
			fmt.Sprint(r.LeafSize), fmt.Sprint(r.Ranks), fmt.Sprint(r.Shards),
			fmt.Sprintf("%.3f", r.BuildDurMs), fmt.Sprint(r.NodesBuilt),
			fmt.Sprint(r.GCs), fmt.Sprintf("%.1f", r.HeapAllocMB),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
