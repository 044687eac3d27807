package engine

import "reversi-engine/othello"

// Static square weights. Corners are worth most, the squares that hand a
// corner to the opponent (X and C squares) are penalised.
var weights8x8 = [8][8]float64{
	{64, -32, 56, 32, 32, 56, -32, 64},
	{-32, -64, 8, 8, 8, 8, -64, -32},
	{56, 8, 56, 16, 16, 56, 8, 56},
	{32, 8, 16, 16, 16, 16, 8, 32},
	{32, 8, 16, 16, 16, 16, 8, 32},
	{56, 8, 56, 16, 16, 56, 8, 56},
	{-32, -64, 8, 8, 8, 8, -64, -32},
	{64, -32, 56, 32, 32, 56, -32, 64},
}

// squareWeights[size] is the row-major weight table for that board size.
var squareWeights [othello.MaxSize + 1][]float64

func init() {
	for size := othello.MinSize; size <= othello.MaxSize; size += 2 {
		squareWeights[size] = buildSquareWeights(size)
	}
}

func buildSquareWeights(size int) []float64 {
	w := make([]float64, size*size)
	if size == 8 {
		for row := 0; row < 8; row++ {
			copy(w[row*8:], weights8x8[row][:])
		}
		return w
	}
	last := size - 1
	edge := func(i int) bool { return i == 0 || i == last }
	ring := func(i int) bool { return i == 1 || i == last-1 }
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			var v float64
			switch {
			case edge(row) && edge(col):
				v = 64
			case ring(row) && ring(col):
				v = -64 // X square
			case (edge(row) && ring(col)) || (ring(row) && edge(col)):
				v = -32 // C square
			case edge(row) || edge(col):
				v = 32
			case ring(row) || ring(col):
				v = 8
			default:
				v = 16
			}
			w[row*size+col] = v
		}
	}
	return w
}

// squareWeight is the table weight of a c disc at (row, col), except that a
// square touching a corner c already owns is worth as much as the corner.
func squareWeight(b *othello.Board, table []float64, row, col int, c othello.Color) float64 {
	size := b.Size()
	for _, k := range corners(size) {
		if k.Row == row && k.Col == col {
			continue
		}
		if Abs(k.Row-row) <= 1 && Abs(k.Col-col) <= 1 && b.At(k.Row, k.Col) == c {
			return table[k.Row*size+k.Col]
		}
	}
	return table[row*size+col]
}

// corners returns the four corner moves of a board.
func corners(size int) [4]othello.Move {
	last := size - 1
	return [4]othello.Move{{Row: 0, Col: 0}, {Row: 0, Col: last}, {Row: last, Col: 0}, {Row: last, Col: last}}
}
