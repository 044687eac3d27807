package tuner

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"reversi-engine/engine"
	"reversi-engine/othello"
)

// GenConfig controls sample generation by self-play.
type GenConfig struct {
	Games       int
	Depth       int
	Size        int
	Parallel    int
	RandomPlies int
	Seed        int64
	CacheMB     int
	Weights     engine.Weights
}

// Generate plays cfg.Games games of the engine against itself and returns
// every position after the random opening, labelled with the final result.
// Finished positions are skipped. The output order is the game order, so a
// fixed seed gives the same samples.
func Generate(ctx context.Context, cfg GenConfig, log zerolog.Logger) ([]Sample, error) {
	perGame := make([][]Sample, cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Parallel, 1))
	for i := 0; i < cfg.Games; i++ {
		g.Go(func() error {
			samples, err := playRecorded(ctx, cfg, i)
			if err != nil {
				return err
			}
			perGame[i] = samples
			log.Debug().Int("game", i+1).Int("samples", len(samples)).Msg("game recorded")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []Sample
	for _, s := range perGame {
		out = append(out, s...)
	}
	return out, nil
}

func playRecorded(ctx context.Context, cfg GenConfig, index int) ([]Sample, error) {
	game, err := othello.NewGame(cfg.Size)
	if err != nil {
		return nil, err
	}
	eng := engine.New(engine.Options{CacheMB: cfg.CacheMB, Weights: cfg.Weights, Logger: zerolog.Nop()})
	ev := eng.Evaluator()
	rng := rand.New(rand.NewSource(cfg.Seed + int64(index)))

	var samples []Sample
	for plies := 0; !game.IsGameOver(); plies++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := game.Board()
		side := b.CurrentPlayer()
		var m othello.Move
		if plies < cfg.RandomPlies {
			legal := b.LegalMoves(side)
			m = legal[rng.Intn(len(legal))]
		} else {
			samples = append(samples, Sample{Features: FeaturesOf(ev.Breakdown(b, othello.Black))})
			res, err := eng.Search(ctx, b, side, engine.Limits{Depth: cfg.Depth})
			if err != nil {
				return nil, fmt.Errorf("game %d: %w", index, err)
			}
			m = res.Move
		}
		if err := game.Play(m); err != nil {
			return nil, fmt.Errorf("game %d: %w", index, err)
		}
	}

	label := 0.5
	switch game.Board().Winner() {
	case othello.Black:
		label = 1
	case othello.White:
		label = 0
	}
	for i := range samples {
		samples[i].Label = label
	}
	return samples, nil
}
