package engine

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"reversi-engine/othello"
)

func newTestEngine() *Engine {
	opts := DefaultOptions()
	opts.CacheMB = 16
	return New(opts)
}

func TestBestMoveDepthOneMaximisesEvaluation(t *testing.T) {
	e := newTestEngine()
	b := mustParse(t, startBoard8)

	res, err := e.BestMove(b, othello.Black, 1)
	if err != nil {
		t.Fatal(err)
	}

	ev := NewEvaluator(DefaultWeights())
	best := math.Inf(-1)
	var first othello.Move
	for _, m := range b.LegalMoves(othello.Black) {
		child := b.Clone()
		if err := child.Apply(m, othello.Black); err != nil {
			t.Fatal(err)
		}
		if s := ev.Evaluate(child, othello.Black); s > best {
			best, first = s, m
		}
	}
	if res.Score != best {
		t.Fatalf("score %v, want %v", res.Score, best)
	}
	if res.Move != first {
		t.Fatalf("move %v, want the first best move in row-major order %v", res.Move, first)
	}
	if res.Depth != 1 || res.Pass {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, tc := range []struct {
		size, depth int
	}{
		{6, 1}, {6, 2}, {6, 3}, {6, 4}, {8, 1}, {8, 2}, {8, 3},
	} {
		for game := 0; game < 6; game++ {
			b := randomBoard(t, rng, tc.size, rng.Intn(tc.size*tc.size-8))
			if b.IsGameOver() {
				continue
			}
			player := b.CurrentPlayer()

			pruned, err := newTestEngine().BestMove(b, player, tc.depth)
			if err != nil {
				t.Fatal(err)
			}
			full, err := newTestEngine().Minimax(b, player, tc.depth)
			if err != nil {
				t.Fatal(err)
			}
			if pruned.Move != full.Move || pruned.Score != full.Score {
				t.Fatalf("size %d depth %d: alpha-beta %v %v, minimax %v %v\n%s",
					tc.size, tc.depth, pruned.Move, pruned.Score, full.Move, full.Score, b.Diagram())
			}
			if pruned.Stats.Nodes > full.Stats.Nodes {
				t.Fatalf("pruned search visited %d nodes, minimax %d", pruned.Stats.Nodes, full.Stats.Nodes)
			}
		}
	}
}

func TestBestMoveLeavesBoardUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	b := randomBoard(t, rng, 8, 20)
	before := b.Clone()
	if _, err := newTestEngine().BestMove(b, b.CurrentPlayer(), 3); err != nil {
		t.Fatal(err)
	}
	if !b.Equal(before) || b.Key() != before.Key() {
		t.Fatal("search modified the caller's board")
	}
}

func TestBestMoveForcedPass(t *testing.T) {
	// White has no reply; black can still play c3.
	b := mustParse(t, "XXX...../......../XO....../......../......../......../......../........ O")
	if b.IsGameOver() || b.HasLegalMove(othello.White) {
		t.Fatal("position should be a forced pass for white")
	}
	turn := b.Turn()

	res, err := newTestEngine().BestMove(b, othello.White, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pass || res.Move != othello.PassMove {
		t.Fatalf("expected a pass, got %+v", res)
	}
	if b.Turn() != turn || b.CurrentPlayer() != othello.White {
		t.Fatal("pass changed the board")
	}
	if res.Stats.Passes == 0 {
		t.Fatal("pass not counted")
	}
}

func TestSearchInterruptedPassScoresStatically(t *testing.T) {
	b := mustParse(t, "XXX...../......../XO....../......../......../......../......../........ O")
	e := newTestEngine()
	res, err := e.Search(context.Background(), b, othello.White, Limits{Nodes: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pass || res.Depth != 0 {
		t.Fatalf("expected an unfinished pass, got %+v", res)
	}
	if want := e.Evaluator().Evaluate(b, othello.White); res.Score != want {
		t.Fatalf("score %v, want the static score %v", res.Score, want)
	}
}

func TestBestMoveErrors(t *testing.T) {
	e := newTestEngine()
	over := mustParse(t, "XXXX/XXXX/XXXX/XXXO X")
	if _, err := e.BestMove(over, othello.Black, 2); !errors.Is(err, ErrGameOver) {
		t.Fatalf("finished game: %v", err)
	}
	if !errors.Is(ErrGameOver, othello.ErrGameOver) {
		t.Fatal("engine and board disagree on the game-over error")
	}
	start := mustParse(t, startBoard8)
	if _, err := e.BestMove(start, othello.Black, 0); !errors.Is(err, ErrDepth) {
		t.Fatalf("depth 0: %v", err)
	}
	if _, err := e.Search(context.Background(), start, othello.Black, Limits{Depth: -1}); !errors.Is(err, ErrDepth) {
		t.Fatalf("negative depth: %v", err)
	}
}

func TestRepeatedSearchHitsCache(t *testing.T) {
	e := newTestEngine()
	b := mustParse(t, startBoard8)
	first, err := e.BestMove(b, othello.Black, 3)
	if err != nil {
		t.Fatal(err)
	}
	if first.Stats.CacheMisses == 0 {
		t.Fatal("first search on an empty cache had no misses")
	}
	second, err := e.BestMove(b, othello.Black, 3)
	if err != nil {
		t.Fatal(err)
	}
	if second.Stats.CacheMisses != 0 || second.Stats.CacheHits == 0 {
		t.Fatalf("second search: %d hits, %d misses", second.Stats.CacheHits, second.Stats.CacheMisses)
	}
	if first.Move != second.Move || first.Score != second.Score {
		t.Fatal("cached search changed its answer")
	}
}

func TestSearchIterativeDeepeningScore(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for game := 0; game < 5; game++ {
		b := randomBoard(t, rng, 8, 10+rng.Intn(30))
		player := b.CurrentPlayer()
		if b.IsGameOver() || !b.HasLegalMove(player) {
			continue
		}
		fixed, err := newTestEngine().BestMove(b, player, 3)
		if err != nil {
			t.Fatal(err)
		}
		deep, err := newTestEngine().Search(context.Background(), b, player, Limits{Depth: 3})
		if err != nil {
			t.Fatal(err)
		}
		if deep.Score != fixed.Score {
			t.Fatalf("iterative score %v, fixed depth %v", deep.Score, fixed.Score)
		}
		if deep.Depth != 3 && !deep.Pass {
			t.Fatalf("finished at depth %d", deep.Depth)
		}
	}
}

func TestSearchSolvesSmallBoard(t *testing.T) {
	b, err := othello.NewBoard(4)
	if err != nil {
		t.Fatal(err)
	}
	res, err := newTestEngine().Search(context.Background(), b, othello.Black, Limits{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Depth != b.Count(othello.Empty) {
		t.Fatalf("stopped at depth %d", res.Depth)
	}
	// Every leaf of a search to the last empty square is a finished game.
	if math.Mod(res.Score, DefaultWeights().Terminal) != 0 {
		t.Fatalf("score %v is not a disc difference", res.Score)
	}
}

func TestSearchNodeLimit(t *testing.T) {
	b := mustParse(t, startBoard8)
	res, err := newTestEngine().Search(context.Background(), b, othello.Black, Limits{Nodes: 10})
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsLegal(res.Move, othello.Black) {
		t.Fatalf("node-limited search returned illegal %v", res.Move)
	}
	if math.IsInf(res.Score, 0) {
		t.Fatal("interrupted search returned an infinite score")
	}
}

func TestSearchHonoursContext(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := randomBoard(t, rng, 10, 12)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	res, err := newTestEngine().Search(ctx, b, b.CurrentPlayer(), Limits{})
	if err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("search ignored its deadline for %v", elapsed)
	}
	if !res.Pass && !b.IsLegal(res.Move, b.CurrentPlayer()) {
		t.Fatalf("illegal move %v", res.Move)
	}
}

func TestSetOption(t *testing.T) {
	e := newTestEngine()
	b := mustParse(t, startBoard8)
	if _, err := e.BestMove(b, othello.Black, 2); err != nil {
		t.Fatal(err)
	}
	if e.Cache().Len() == 0 {
		t.Fatal("search left the cache empty")
	}
	if err := e.SetOption("corners", "5"); err != nil {
		t.Fatal(err)
	}
	if e.Cache().Len() != 0 {
		t.Fatal("changing a weight kept stale cache entries")
	}
	if e.Evaluator().Weights().Corners != 5 {
		t.Fatal("weight not applied")
	}
	if err := e.SetOption("hash", "2"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetOption("hash", "0"); err == nil {
		t.Fatal("zero hash size accepted")
	}
	if err := e.SetOption("nonsense", "1"); err == nil {
		t.Fatal("unknown option accepted")
	}
}
