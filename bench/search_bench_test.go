package bench

import (
	"testing"

	"reversi-engine/engine"
	"reversi-engine/othello"
)

func benchBestMove(b *testing.B, board *othello.Board, depth int, warm bool) {
	opts := engine.DefaultOptions()
	eng := engine.New(opts)
	player := board.CurrentPlayer()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !warm {
			eng.ResetCache()
		}
		if _, err := eng.BestMove(board, player, depth); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBestMove_Initial_D5(b *testing.B) {
	board, err := othello.NewBoard(8)
	if err != nil {
		b.Fatal(err)
	}
	benchBestMove(b, board, 5, false)
}

func BenchmarkBestMove_Midgame_D5(b *testing.B) {
	benchBestMove(b, parse(b, midgame), 5, false)
}

func BenchmarkBestMove_Midgame_D5_WarmCache(b *testing.B) {
	benchBestMove(b, parse(b, midgame), 5, true)
}

func BenchmarkEvaluate_Midgame(b *testing.B) {
	board := parse(b, midgame)
	ev := engine.NewEvaluator(engine.DefaultWeights())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ev.Evaluate(board, othello.White)
	}
}
