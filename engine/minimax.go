package engine

import (
	"math"

	"reversi-engine/othello"
)

// Minimax searches like BestMove but without pruning. It visits every node
// and is only useful for checking the pruned search on small depths.
func (e *Engine) Minimax(b *othello.Board, player othello.Color, depth int) (Result, error) {
	if depth <= 0 {
		return Result{}, ErrDepth
	}
	if b.IsGameOver() {
		return Result{}, ErrGameOver
	}
	e.stats = Stats{}
	work := b.Clone()

	moves := e.orderMoves(work, player, othello.PassMove)
	if len(moves) == 0 {
		e.stats.Passes++
		score := -e.minimax(work, player.Opponent(), depth)
		return Result{Move: othello.PassMove, Score: score, Depth: depth, Pass: true, Stats: e.stats}, nil
	}
	best := Result{Move: moves[0], Score: math.Inf(-1), Depth: depth}
	for _, m := range moves {
		st := work.MakeMove(m, player)
		score := -e.minimax(work, player.Opponent(), depth-1)
		work.UnmakeMove(st)
		if score > best.Score {
			best.Score = score
			best.Move = m
		}
	}
	best.Stats = e.stats
	return best, nil
}

func (e *Engine) minimax(b *othello.Board, toMove othello.Color, depth int) float64 {
	e.stats.Nodes++
	if depth == 0 || b.IsGameOver() {
		e.stats.Leaves++
		return e.evaluate(b, toMove)
	}
	moves := b.LegalMoves(toMove)
	if len(moves) == 0 {
		e.stats.Passes++
		return -e.minimax(b, toMove.Opponent(), depth)
	}
	best := math.Inf(-1)
	for _, m := range moves {
		st := b.MakeMove(m, toMove)
		best = max(best, -e.minimax(b, toMove.Opponent(), depth-1))
		b.UnmakeMove(st)
	}
	return best
}
