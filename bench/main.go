// Benchmark entry: -stage a|b|c
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/tarim-labs/kdpart/kdtree"
)

type stageOpts struct {
	cfg  *kdtree.Config
	seed int64
}

func main() {
	stage := flag.String("stage", "", "benchmark stage: a (build scaling) | b (sharded forest) | c (out-of-core mmap)")
	config := flag.String("config", "", "optional YAML build config")
	seed := flag.Int64("seed", 42, "point generator seed")
	flag.Parse()

	cfg := kdtree.DefaultConfig()
	if *config != "" {
		loaded, err := kdtree.LoadConfig(*config)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	opts := stageOpts{cfg: cfg, seed: *seed}

	switch *stage {
	case "a":
		runStageA(opts)
	case "b":
		runStageB(opts)
	case "c":
		runStageC(opts)
	default:
		log.Fatalf("specify -stage a|b|c")
	}
	fmt.Println("benchmark finished")
}
