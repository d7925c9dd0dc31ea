package kdtree

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tarim-labs/kdpart/kdtree/store"
)

// BuildForest builds one tree per point store concurrently. Each build is
// internally single-threaded and touches only its own store, so shards
// never contend. The first failed build cancels nothing (builds are not
// resumable anyway) but its error is returned.
func BuildForest(stores []store.PointStore, cfg *Config, stats StatFactory, log *slog.Logger) ([]*Tree, error) {
	cfg = cfg.OrDefault()
	trees := make([]*Tree, len(stores))
	var g errgroup.Group
	for i, s := range stores {
		i, s := i, s
		g.Go(func() error {
			b := NewBuilder(s, cfg)
			b.SetStatFactory(stats)
			b.SetLogger(log)
			t, err := b.Build()
			if err != nil {
				return err
			}
			trees[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}
