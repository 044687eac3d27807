package engine

import (
	"cmp"
	"math"

	"golang.org/x/exp/slices"

	"reversi-engine/othello"
)

type scoredMove struct {
	move  othello.Move
	score float64
}

/*
Move ordering: every candidate is played and the resulting position is
evaluated from the mover's side, best first. The sort is stable so equal
scores keep row-major order and two searches of the same position visit
moves in the same order. A previous iteration's best move, if given, goes
in front of everything else.
*/
func (e *Engine) orderMoves(b *othello.Board, player othello.Color, first othello.Move) []othello.Move {
	moves := b.LegalMoves(player)
	if len(moves) < 2 {
		return moves
	}
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		st := b.MakeMove(m, player)
		scored[i] = scoredMove{move: m, score: e.evaluate(b, player)}
		b.UnmakeMove(st)
		if m == first {
			scored[i].score = math.Inf(1)
		}
	}
	slices.SortStableFunc(scored, func(a, b scoredMove) int {
		return cmp.Compare(b.score, a.score)
	})
	for i := range scored {
		moves[i] = scored[i].move
	}
	return moves
}
