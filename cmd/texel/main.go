package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"reversi-engine/engine"
	"reversi-engine/logx"
	"reversi-engine/tuner"
)

var (
	outJSON  = flag.String("out", "weights_out.json", "Where to write tuned weights as JSON")
	inJSON   = flag.String("init", "", "Optional JSON with initial weights (also used for self-play)")
	games    = flag.Int("games", 200, "Self-play games used as training data")
	depth    = flag.Int("depth", 3, "Search depth during self-play")
	size     = flag.Int("size", 8, "Board size")
	random   = flag.Int("random", 6, "Random opening plies per game")
	seed     = flag.Int64("seed", 1, "Seed for openings and shuffling")
	epochs   = flag.Int("epochs", 50, "Training epochs")
	batch    = flag.Int("batch", 4096, "Mini-batch size")
	lr       = flag.Float64("lr", 0.05, "Adam learning rate")
	l2       = flag.Float64("l2", 0.0, "L2 regularization (optional)")
	kScale   = flag.Float64("k", 1, "Logistic scale of the evaluation")
	autoK    = flag.Bool("autok", true, "Re-fit k on the held-out split each epoch")
	threads  = flag.Int("threads", runtime.NumCPU(), "Parallel self-play games")
	logLevel = flag.String("log", "info", "Log level")
)

func main() {
	flag.Parse()
	lvl, err := logx.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log level: %v\n", err)
		os.Exit(2)
	}
	log := logx.New(os.Stderr, lvl)

	start := engine.DefaultWeights()
	if *inJSON != "" {
		if start, err = engine.LoadWeights(*inJSON); err != nil {
			log.Fatal().Err(err).Msg("loading init weights")
		}
		log.Info().Str("path", *inJSON).Msg("loaded init weights")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	samples, err := tuner.Generate(ctx, tuner.GenConfig{
		Games:       *games,
		Depth:       *depth,
		Size:        *size,
		Parallel:    *threads,
		RandomPlies: *random,
		Seed:        *seed,
		CacheMB:     4,
		Weights:     start,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("self-play")
	}
	log.Info().Int("samples", len(samples)).Msg("self-play done")

	cfg := tuner.DefaultTrainConfig()
	cfg.Epochs, cfg.Batch, cfg.LR, cfg.L2 = *epochs, *batch, *lr, *l2
	cfg.K, cfg.AutoK, cfg.Seed = *kScale, *autoK, *seed

	res, err := tuner.Train(ctx, samples, start, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("training")
	}
	if err := engine.SaveWeights(*outJSON, res.Weights); err != nil {
		log.Fatal().Err(err).Msg("saving weights")
	}

	fmt.Printf("k=%.4f train_loss=%.6f val_loss=%.6f\n", res.K, res.TrainLoss, res.ValLoss)
	for _, name := range tuner.ParamNames {
		before, _ := start.Get(name)
		after, _ := res.Weights.Get(name)
		fmt.Printf("%-11s %8.4f -> %8.4f\n", name, before, after)
	}
	fmt.Printf("written to %s\n", *outJSON)
}
