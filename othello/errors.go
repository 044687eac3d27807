package othello

import "errors"

var (
	ErrInvalidMove   = errors.New("othello: invalid move")
	ErrOutOfBounds   = errors.New("othello: square off the board")
	ErrNotYourTurn   = errors.New("othello: not this player's turn")
	ErrGameOver      = errors.New("othello: game is over")
	ErrUndoUnderflow = errors.New("othello: nothing to undo")
	ErrBoardSize     = errors.New("othello: board size must be even and between 4 and 16")
	ErrBadNotation   = errors.New("othello: malformed notation")
)
