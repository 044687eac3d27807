package engine

import (
	"math"

	"reversi-engine/othello"
)

// Terms is the breakdown of one evaluation. Every term is in [-1, 1] and
// positive when it favours the evaluating player.
type Terms struct {
	Mobility   float64
	Corners    float64
	Frontier   float64
	Positional float64
	Stability  float64
	Phase      float64 // 0 at the start, 1 on a full board
	Terminal   bool
	Score      float64
}

// Evaluator scores positions. It is stateless apart from its weights and
// safe to share between engines that do not change them.
type Evaluator struct {
	w Weights
}

func NewEvaluator(w Weights) *Evaluator { return &Evaluator{w: w} }

func (ev *Evaluator) Weights() Weights { return ev.w }

// Evaluate returns the score of b from player's point of view. It is
// antisymmetric: Evaluate(b, Black) == -Evaluate(b, White).
func (ev *Evaluator) Evaluate(b *othello.Board, player othello.Color) float64 {
	return ev.Breakdown(b, player).Score
}

// Breakdown computes every term and the blended score.
func (ev *Evaluator) Breakdown(b *othello.Board, player othello.Color) Terms {
	opp := player.Opponent()
	if b.IsGameOver() {
		diff := float64(b.Count(player) - b.Count(opp))
		return Terms{Phase: 1, Terminal: true, Score: diff * ev.w.Terminal}
	}

	var t Terms
	t.Phase = Clamp(float64(b.Turn())/float64(b.MaxTurn()), 0, 1)
	t.Mobility = ratio(b.CountLegalMoves(player), b.CountLegalMoves(opp), 1)

	var cornerCount [3]int
	for _, m := range corners(b.Size()) {
		cornerCount[b.At(m.Row, m.Col)]++
	}
	t.Corners = ratio(cornerCount[player], cornerCount[opp], 1)

	frontier, positional, magnitude, stability := scanDiscs(b)
	t.Frontier = ratio(frontier[opp], frontier[player], 1)
	if magnitude > 0 {
		t.Positional = (positional[player] - positional[opp]) / magnitude
	}
	t.Stability = ratio(stability[player], stability[opp], math.SmallestNonzeroFloat64)

	early, late := 1-t.Phase, 1+t.Phase
	t.Score = ev.w.Mobility*early*t.Mobility +
		ev.w.Frontier*early*t.Frontier +
		ev.w.Corners*late*t.Corners +
		ev.w.Stability*late*t.Stability +
		ev.w.Positional*late*t.Positional
	return t
}

// scanDiscs walks every disc once and accumulates, per colour, the frontier
// count, the positional weight and the stability estimate. magnitude is the
// summed absolute weight of all occupied squares.
func scanDiscs(b *othello.Board) (frontier [3]int, positional [3]float64, magnitude float64, stability [3]float64) {
	size := b.Size()
	table := squareWeights[size]
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			c := b.At(row, col)
			if c == othello.Empty {
				continue
			}
			if isFrontier(b, row, col) {
				frontier[c]++
			}
			w := squareWeight(b, table, row, col, c)
			positional[c] += w
			magnitude += Abs(w)
			stability[c] += discStability(b, row, col)
		}
	}
	return frontier, positional, magnitude, stability
}

func isFrontier(b *othello.Board, row, col int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.InBounds(row+dr, col+dc) && b.At(row+dr, col+dc) == othello.Empty {
				return true
			}
		}
	}
	return false
}

// Row, column and the two diagonals, one direction each; the opposite side
// is the negated vector.
var axes = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// discStability halves for every empty square on the shorter side of each
// line through the disc. A disc with a full line on at least one side in all
// four axes keeps stability 1.
func discStability(b *othello.Board, row, col int) float64 {
	exposure := 0
	for _, a := range axes {
		fwd := countEmpty(b, row, col, a[0], a[1])
		back := countEmpty(b, row, col, -a[0], -a[1])
		exposure += min(fwd, back)
	}
	return math.Ldexp(1, -exposure)
}

func countEmpty(b *othello.Board, row, col, dr, dc int) int {
	n := 0
	for r, c := row+dr, col+dc; b.InBounds(r, c); r, c = r+dr, c+dc {
		if b.At(r, c) == othello.Empty {
			n++
		}
	}
	return n
}
