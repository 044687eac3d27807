package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"reversi-engine/engine"
	"reversi-engine/logx"
)

func loadWeights(path string) engine.Weights {
	if path == "" {
		return engine.DefaultWeights()
	}
	w, err := engine.LoadWeights(path)
	if err != nil {
		log.Fatalf("weights: %v", err)
	}
	return w
}

func main() {
	games := flag.Int("games", 10, "number of games (colours alternate)")
	depth1 := flag.Int("depth1", 4, "search depth of player A")
	depth2 := flag.Int("depth2", 4, "search depth of player B")
	weights1 := flag.String("weights", "", "JSON weights file for player A")
	weights2 := flag.String("weights2", "", "JSON weights file for player B")
	parallel := flag.Int("parallel", runtime.NumCPU(), "games played at the same time")
	size := flag.Int("size", 8, "board size")
	random := flag.Int("random", 4, "random opening moves per game")
	seed := flag.Int64("seed", 1, "seed for the random openings")
	hash := flag.Int("hash", 4, "evaluation cache per engine in MB")
	level := flag.String("log", "info", "log level")
	flag.Parse()

	lvl, err := logx.ParseLevel(*level)
	if err != nil {
		log.Fatalf("log level: %v", err)
	}
	logger := logx.New(os.Stderr, lvl)

	cfg := matchConfig{
		games:       *games,
		parallel:    *parallel,
		size:        *size,
		randomPlies: *random,
		seed:        *seed,
		a:           player{name: "A", depth: *depth1, weights: loadWeights(*weights1)},
		b:           player{name: "B", depth: *depth2, weights: loadWeights(*weights2)},
		cacheMB:     *hash,
		log:         logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := runMatch(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("match aborted")
	}
	s := summarize(results)
	fmt.Printf("games %d in %v\n", len(results), time.Since(start).Round(time.Millisecond))
	fmt.Printf("A (depth %d): %d wins\nB (depth %d): %d wins\ndraws: %d\n", *depth1, s.winsA, *depth2, s.winsB, s.draws)
	fmt.Printf("average disc difference for A: %+.2f\n", float64(s.discDiff)/float64(max(len(results), 1)))
}
