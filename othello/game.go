package othello

import "fmt"

// Game couples a board with its undo history. It is what drivers hold on to;
// the search engine works on bare boards.
type Game struct {
	board   *Board
	history *History
}

func NewGame(size int) (*Game, error) {
	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	return NewGameFrom(b), nil
}

// NewGameFrom starts a game at an arbitrary position, which becomes the
// initial snapshot. If the named side has no legal move while the game goes
// on, the turn passes to the opponent as it would after MakeMove.
func NewGameFrom(b *Board) *Game {
	b = b.Clone()
	b.settlePass()
	return &Game{board: b, history: NewHistory(b)}
}

// Board returns the live board. Callers must not mutate it; clone it first.
func (g *Game) Board() *Board { return g.board }

func (g *Game) CurrentPlayer() Color { return g.board.CurrentPlayer() }

func (g *Game) LegalMoves() []Move { return g.board.LegalMoves(g.board.CurrentPlayer()) }

func (g *Game) IsGameOver() bool { return g.board.IsGameOver() }

func (g *Game) Score() Score { return g.board.Score() }

func (g *Game) Turn() int { return g.board.Turn() }

func (g *Game) HistoryLen() int { return g.history.Len() }

// Play applies m for the side to move and records the result.
func (g *Game) Play(m Move) error {
	return g.PlayAs(m, g.board.CurrentPlayer())
}

// PlayAs is Play with an explicit player, which must be the side to move.
func (g *Game) PlayAs(m Move, player Color) error {
	if g.board.IsGameOver() {
		return ErrGameOver
	}
	if player != g.board.CurrentPlayer() {
		return fmt.Errorf("%s to move, got %s: %w", g.board.CurrentPlayer(), player, ErrNotYourTurn)
	}
	if err := g.board.Apply(m, player); err != nil {
		return err
	}
	g.history.Record(g.board, player)
	return nil
}

// Undo reverts the latest run of moves by one player (see History.Undo).
func (g *Game) Undo() error {
	s, err := g.history.Undo()
	if err != nil {
		return err
	}
	g.board = s.Board
	return nil
}
