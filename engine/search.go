package engine

import (
	"context"
	"errors"
	"math"
	"time"

	"reversi-engine/othello"
)

// =============================================================================
// RESULTS AND ERRORS
// =============================================================================

var (
	ErrDepth    = errors.New("engine: depth must be positive")
	ErrGameOver = othello.ErrGameOver
)

// Result is what a search decided. When the side to move has no legal
// move, Pass is set and Move is othello.PassMove.
type Result struct {
	Move  othello.Move
	Score float64
	Depth int
	Pass  bool
	Stats Stats
}

// BestMove searches b to a fixed depth for player. b itself is never
// modified; the search plays on a private copy.
func (e *Engine) BestMove(b *othello.Board, player othello.Color, depth int) (Result, error) {
	if depth <= 0 {
		return Result{}, ErrDepth
	}
	if b.IsGameOver() {
		return Result{}, ErrGameOver
	}
	e.stats = Stats{}
	e.stop.start(context.Background(), Limits{})
	start := time.Now()

	res, _ := e.rootsearch(b.Clone(), player, depth, othello.PassMove)
	e.stats.Elapsed = time.Since(start)
	res.Stats = e.stats
	e.logResult(res)
	return res, nil
}

// Search runs iterative deepening up to limits.Depth (or until the board
// would be full) and returns the deepest completed iteration. When a limit
// or ctx interrupts the first iteration, the best move seen so far is
// returned with Depth 0; it is always legal.
func (e *Engine) Search(ctx context.Context, b *othello.Board, player othello.Color, limits Limits) (Result, error) {
	if limits.Depth < 0 {
		return Result{}, ErrDepth
	}
	if b.IsGameOver() {
		return Result{}, ErrGameOver
	}
	maxDepth := b.Count(othello.Empty)
	if limits.Depth > 0 && limits.Depth < maxDepth {
		maxDepth = limits.Depth
	}

	e.stats = Stats{}
	e.stop.start(ctx, limits)
	start := time.Now()
	work := b.Clone()

	var best Result
	completed := false
	pv := othello.PassMove
	for depth := 1; depth <= maxDepth; depth++ {
		res, done := e.rootsearch(work, player, depth, pv)
		if !done {
			if !completed {
				best = e.partialResult(work, player, res)
			}
			break
		}
		best, completed = res, true
		pv = res.Move
		e.log.Debug().
			Int("depth", depth).
			Str("move", res.Move.String()).
			Float64("score", res.Score).
			Uint64("nodes", e.stats.Nodes).
			Dur("elapsed", time.Since(start)).
			Msg("iteration complete")
		if res.Pass {
			// Deeper iterations only refine the score of a forced decision.
			break
		}
	}

	e.stats.Elapsed = time.Since(start)
	best.Stats = e.stats
	e.logResult(best)
	return best, nil
}

// partialResult turns an interrupted first iteration into something the
// caller can play. A pass whose reply search was cut off carries no score,
// so the current board is scored statically instead.
func (e *Engine) partialResult(b *othello.Board, player othello.Color, res Result) Result {
	res.Depth = 0
	if res.Pass {
		res.Score = e.eval.Evaluate(b, player)
		return res
	}
	if !math.IsInf(res.Score, -1) {
		return res
	}
	st := b.MakeMove(res.Move, player)
	res.Score = e.eval.Evaluate(b, player)
	b.UnmakeMove(st)
	return res
}

func (e *Engine) logResult(res Result) {
	e.log.Info().
		Str("move", res.Move.String()).
		Float64("score", res.Score).
		Int("depth", res.Depth).
		Bool("pass", res.Pass).
		Object("stats", res.Stats).
		Msg("search done")
}

// =============================================================================
// ROOT
// =============================================================================

// rootsearch returns the best move at depth and whether the iteration ran to
// completion. Only a strict improvement replaces the current best, so ties go
// to the earlier move in search order.
func (e *Engine) rootsearch(b *othello.Board, player othello.Color, depth int, pv othello.Move) (Result, bool) {
	moves := e.orderMoves(b, player, pv)
	if len(moves) == 0 {
		e.stats.Passes++
		score := -e.negamax(b, player.Opponent(), math.Inf(-1), math.Inf(1), depth)
		return Result{Move: othello.PassMove, Score: score, Depth: depth, Pass: true}, !e.stop.stopped
	}

	best := Result{Move: moves[0], Score: math.Inf(-1), Depth: depth}
	alpha, beta := math.Inf(-1), math.Inf(1)
	for _, m := range moves {
		st := b.MakeMove(m, player)
		score := -e.negamax(b, player.Opponent(), -beta, -alpha, depth-1)
		b.UnmakeMove(st)
		if e.stop.stopped {
			return best, false
		}
		if score > best.Score {
			best.Score = score
			best.Move = m
		}
		alpha = max(alpha, best.Score)
	}
	return best, true
}

// =============================================================================
// NEGAMAX
// =============================================================================

// negamax scores b from toMove's side. A side without moves passes without
// using up depth; the game ends before the recursion could loop because
// IsGameOver catches two consecutive passes.
func (e *Engine) negamax(b *othello.Board, toMove othello.Color, alpha, beta float64, depth int) float64 {
	e.stats.Nodes++
	if e.stop.check(e.stats.Nodes) {
		return 0
	}
	if depth == 0 || b.IsGameOver() {
		e.stats.Leaves++
		return e.evaluate(b, toMove)
	}

	moves := e.orderMoves(b, toMove, othello.PassMove)
	if len(moves) == 0 {
		e.stats.Passes++
		return -e.negamax(b, toMove.Opponent(), -beta, -alpha, depth)
	}

	best := math.Inf(-1)
	for _, m := range moves {
		st := b.MakeMove(m, toMove)
		score := -e.negamax(b, toMove.Opponent(), -beta, -alpha, depth-1)
		b.UnmakeMove(st)
		if e.stop.stopped {
			return 0
		}
		if score > best {
			best = score
		}
		alpha = max(alpha, score)
		if alpha >= beta {
			e.stats.BetaCutoffs++
			break
		}
	}
	return best
}
