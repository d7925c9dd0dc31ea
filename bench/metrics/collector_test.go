package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCsSince(t *testing.T) {
	before := ReadMem()
	GC()
	after := ReadMem()
	assert.GreaterOrEqual(t, after.GCsSince(before), uint32(1))
	// reversed order never underflows
	assert.Zero(t, before.GCsSince(after))
}

func TestWriteBuildCSV(t *testing.T) {
	rows := []BuildRow{
		{Points: 100, Dim: 2, BlockSize: 16, LeafSize: 8, Ranks: 1, Shards: 1,
			BuildDurMs: 1.5, NodesBuilt: 31, GCs: 2, HeapAllocMB: 3.25},
		{Points: 200, Dim: 2, BlockSize: 16, LeafSize: 8, Ranks: 4, Shards: 2,
			BuildDurMs: 2.25, NodesBuilt: 63, GCs: 0, HeapAllocMB: 6.5},
	}
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteBuildCSV(rows, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "gcs", recs[0][8])
	assert.Equal(t, "2", recs[1][8])
	assert.Equal(t, "100", recs[1][0])
	assert.Equal(t, "1.500", recs[1][6])
}
