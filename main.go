package main

import (
	"flag"
	"log"
	"os"

	"reversi-engine/engine"
	"reversi-engine/logx"
)

func main() {
	size := flag.Int("size", 8, "board size (even, 4-16)")
	depth := flag.Int("depth", 6, "search depth for a bare go command")
	hash := flag.Int("hash", engine.DefaultTTSize, "evaluation cache size in MB")
	weights := flag.String("weights", "", "JSON weights file")
	level := flag.String("log", "info", "log level (debug, info, warn, error, off)")
	flag.Parse()

	lvl, err := logx.ParseLevel(*level)
	if err != nil {
		log.Fatalf("log level: %v", err)
	}
	logger := logx.New(os.Stderr, lvl)

	opts := engine.DefaultOptions()
	opts.CacheMB = *hash
	if *weights != "" {
		if opts.Weights, err = engine.LoadWeights(*weights); err != nil {
			log.Fatalf("weights: %v", err)
		}
	}

	s, err := newSession(os.Stdout, logger, *size, *depth, opts)
	if err != nil {
		log.Fatalf("new game: %v", err)
	}
	s.loop(os.Stdin)
}
