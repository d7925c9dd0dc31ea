package kdtree

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds build parameters. The storage block size ("chunk size") is
// not configured here; it always derives from the point store.
type Config struct {
	LeafSize  int `yaml:"leaf_size"`  // max points per leaf, default 32
	RankCount int `yaml:"rank_count"` // number of distributed workers, default 1
	LocalRank int `yaml:"local_rank"` // this worker's rank, default 0
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LeafSize:  32,
		RankCount: 1,
		LocalRank: 0,
	}
}

// OrDefault returns DefaultConfig if c is nil, otherwise normalizes c.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	if c.LeafSize <= 0 {
		c.LeafSize = 32
	}
	if c.RankCount <= 0 {
		c.RankCount = 1
	}
	if c.LocalRank < 0 || c.LocalRank >= c.RankCount {
		c.LocalRank = 0
	}
	return c
}

// LoadConfig reads a YAML config file and normalizes it.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c.OrDefault(), nil
}
