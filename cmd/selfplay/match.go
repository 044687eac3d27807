package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"reversi-engine/engine"
	"reversi-engine/othello"
)

// player is one side of a match: weights and a search depth. Every game
// builds fresh engines from it, so games share nothing.
type player struct {
	name    string
	depth   int
	weights engine.Weights
}

type gameResult struct {
	index  int
	aBlack bool
	score  othello.Score
	moves  int
}

// diffA is the final disc difference from player A's side.
func (r gameResult) diffA() int {
	if r.aBlack {
		return r.score.Black - r.score.White
	}
	return r.score.White - r.score.Black
}

type matchConfig struct {
	games       int
	parallel    int
	size        int
	randomPlies int
	seed        int64
	a, b        player
	cacheMB     int
	log         zerolog.Logger
}

// playGame plays one game to the end. Player A has black on even indices.
// The first randomPlies moves are random so that games differ.
func playGame(ctx context.Context, cfg matchConfig, index int) (gameResult, error) {
	res := gameResult{index: index, aBlack: index%2 == 0}
	g, err := othello.NewGame(cfg.size)
	if err != nil {
		return res, err
	}
	newEngine := func(p player) *engine.Engine {
		return engine.New(engine.Options{CacheMB: cfg.cacheMB, Weights: p.weights, Logger: zerolog.Nop()})
	}
	engines := map[othello.Color]*engine.Engine{}
	depths := map[othello.Color]int{}
	black, white := cfg.a, cfg.b
	if !res.aBlack {
		black, white = white, black
	}
	engines[othello.Black], depths[othello.Black] = newEngine(black), black.depth
	engines[othello.White], depths[othello.White] = newEngine(white), white.depth

	rng := rand.New(rand.NewSource(cfg.seed + int64(index/2)))
	for !g.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		side := g.CurrentPlayer()
		var m othello.Move
		if res.moves < cfg.randomPlies {
			legal := g.LegalMoves()
			m = legal[rng.Intn(len(legal))]
		} else {
			r, err := engines[side].Search(ctx, g.Board(), side, engine.Limits{Depth: depths[side]})
			if err != nil {
				return res, fmt.Errorf("game %d move %d: %w", index, res.moves, err)
			}
			m = r.Move
		}
		if err := g.Play(m); err != nil {
			return res, fmt.Errorf("game %d move %d: %w", index, res.moves, err)
		}
		res.moves++
	}
	res.score = g.Score()
	return res, nil
}

// runMatch plays cfg.games games, at most cfg.parallel at a time.
func runMatch(ctx context.Context, cfg matchConfig) ([]gameResult, error) {
	results := make([]gameResult, cfg.games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.parallel, 1))
	for i := 0; i < cfg.games; i++ {
		g.Go(func() error {
			r, err := playGame(ctx, cfg, i)
			if err != nil {
				return err
			}
			results[i] = r
			cfg.log.Info().
				Int("game", i+1).
				Bool("a_black", r.aBlack).
				Int("black", r.score.Black).
				Int("white", r.score.White).
				Int("moves", r.moves).
				Msg("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type summary struct {
	winsA, winsB, draws int
	discDiff            int
}

func summarize(results []gameResult) summary {
	var s summary
	for _, r := range results {
		d := r.diffA()
		switch {
		case d > 0:
			s.winsA++
		case d < 0:
			s.winsB++
		default:
			s.draws++
		}
		s.discDiff += d
	}
	return s
}
