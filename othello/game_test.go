package othello

import (
	"errors"
	"testing"
)

func TestGamePlayThenUndoRestoresPosition(t *testing.T) {
	g, err := NewGame(8)
	if err != nil {
		t.Fatal(err)
	}
	start := g.Board().Clone()

	if err := g.Play(mustMove(t, "d3")); err != nil {
		t.Fatal(err)
	}
	if g.HistoryLen() != g.Turn()+1 {
		t.Fatalf("history %d, turn %d", g.HistoryLen(), g.Turn())
	}
	if err := g.Undo(); err != nil {
		t.Fatal(err)
	}
	if !g.Board().Equal(start) || g.CurrentPlayer() != Black {
		t.Fatalf("undo did not restore the start:\n%s", g.Board().Diagram())
	}
	if g.HistoryLen() != 1 {
		t.Fatalf("history %d after undo, want 1", g.HistoryLen())
	}
}

func TestGameUndoEachMoveOfAGame(t *testing.T) {
	g, _ := NewGame(6)
	var boards []*Board
	for !g.IsGameOver() {
		boards = append(boards, g.Board().Clone())
		if err := g.Play(g.LegalMoves()[0]); err != nil {
			t.Fatal(err)
		}
		if g.HistoryLen() != g.Turn()+1 {
			t.Fatalf("history %d, turn %d", g.HistoryLen(), g.Turn())
		}
	}
	// Replay backwards; every undo must land on a position seen before.
	for g.HistoryLen() > 1 {
		if err := g.Undo(); err != nil {
			t.Fatal(err)
		}
		found := false
		for _, b := range boards {
			if b.Equal(g.Board()) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("undo produced an unseen position:\n%s", g.Board().Diagram())
		}
	}
	if !g.Board().Equal(boards[0]) {
		t.Fatalf("did not unwind to the start")
	}
}

func TestGameUndoUnderflow(t *testing.T) {
	g, _ := NewGame(8)
	before := g.Board().Clone()
	if err := g.Undo(); !errors.Is(err, ErrUndoUnderflow) {
		t.Fatalf("got %v, want ErrUndoUnderflow", err)
	}
	if !g.Board().Equal(before) || g.HistoryLen() != 1 {
		t.Fatalf("failed undo changed the game")
	}
}

func TestGameUndoRevertsForcedPassRun(t *testing.T) {
	start := mustParse(t, forcedPassBoard)
	g := NewGameFrom(start)
	if err := g.Play(mustMove(t, "c1")); err != nil {
		t.Fatal(err)
	}
	if g.CurrentPlayer() != Black {
		t.Fatalf("white should have passed")
	}
	if err := g.Play(mustMove(t, "c3")); err != nil {
		t.Fatal(err)
	}
	if !g.IsGameOver() {
		t.Fatalf("white has no discs left, game should be over")
	}
	if err := g.Undo(); err != nil {
		t.Fatal(err)
	}
	if !g.Board().Equal(start) || g.HistoryLen() != 1 {
		t.Fatalf("undo should revert both black moves of the pass run:\n%s", g.Board().Diagram())
	}
}

func TestGamePlayErrors(t *testing.T) {
	g, _ := NewGame(8)
	if err := g.PlayAs(mustMove(t, "d3"), White); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("got %v, want ErrNotYourTurn", err)
	}
	if err := g.Play(mustMove(t, "a1")); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("got %v, want ErrInvalidMove", err)
	}
	if g.HistoryLen() != 1 {
		t.Fatalf("rejected moves must not be recorded")
	}

	over := NewGameFrom(mustParse(t, "XXXX/XXXX/XXXX/XXX. O"))
	if err := over.Play(mustMove(t, "d4")); !errors.Is(err, ErrGameOver) {
		t.Fatalf("got %v, want ErrGameOver", err)
	}
}

func TestHistoryTopIsACopy(t *testing.T) {
	b, _ := NewBoard(8)
	h := NewHistory(b)
	top := h.Top()
	top.Board.MakeMove(Move{Row: 2, Col: 3}, Black)
	if h.Top().Board.Turn() != 0 {
		t.Fatalf("mutating Top leaked into the history")
	}
}

func TestNewGameFromStuckSidePasses(t *testing.T) {
	// White to move without a reply; black still has c3.
	b := mustParse(t, "XXX...../......../XO....../......../......../......../......../........ O")
	g := NewGameFrom(b)
	if g.CurrentPlayer() != Black || g.Turn() != b.Turn() {
		t.Fatalf("stuck white not passed: %s to move, turn %d", g.CurrentPlayer(), g.Turn())
	}
	if b.CurrentPlayer() != White {
		t.Fatal("NewGameFrom modified its argument")
	}
	if err := g.Play(mustMove(t, "c3")); err != nil {
		t.Fatal(err)
	}
	if sc := g.Score(); sc.Black != 6 || sc.White != 0 || !g.IsGameOver() {
		t.Fatalf("score %+v, game over %v", sc, g.IsGameOver())
	}
	if err := g.Undo(); err != nil || g.CurrentPlayer() != Black || g.HistoryLen() != 1 {
		t.Fatalf("undo after loaded pass: %v, %s to move", err, g.CurrentPlayer())
	}
}
