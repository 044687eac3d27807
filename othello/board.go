package othello

import (
	"fmt"
	"strings"
)

// Color is the content of a cell, and doubles as the player identifier.
type Color uint8

const (
	Empty Color = 0
	Black Color = 1 // moves first
	White Color = 2
)

// Opponent returns the other player. Empty has no opponent and stays Empty.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// Symbol is the single character used by the text board format.
func (c Color) Symbol() byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	}
	return '.'
}

const (
	MinSize     = 4
	MaxSize     = 16
	DefaultSize = 8
)

// Board is an N×N Othello position. The zero value is not usable; build one
// with NewBoard or ParseBoard.
type Board struct {
	size       int
	cells      []Color
	discs      [3]int // indexed by Color
	turn       int
	passOffset int
	key        Key
}

// Score holds the disc count of each player.
type Score struct {
	Black int
	White int
}

// Status tells whether the game goes on and, if not, why it ended.
type Status uint8

const (
	InProgress Status = iota
	BoardFull
	NoMovesLeft // neither side can move although empty cells remain
)

func (s Status) String() string {
	switch s {
	case BoardFull:
		return "board full"
	case NoMovesLeft:
		return "no moves left"
	}
	return "in progress"
}

func validSize(size int) bool {
	return size >= MinSize && size <= MaxSize && size%2 == 0
}

// NewBoard returns the standard starting position for a size×size board.
func NewBoard(size int) (*Board, error) {
	if !validSize(size) {
		return nil, fmt.Errorf("size %d: %w", size, ErrBoardSize)
	}
	b := emptyBoard(size)
	lo, hi := size/2-1, size/2
	b.set(b.index(lo, lo), White)
	b.set(b.index(hi, hi), White)
	b.set(b.index(lo, hi), Black)
	b.set(b.index(hi, lo), Black)
	return b, nil
}

func emptyBoard(size int) *Board {
	b := &Board{
		size:  size,
		cells: make([]Color, size*size),
	}
	b.discs[Empty] = size * size
	return b
}

// Clone returns a deep copy that shares nothing with b.
func (b *Board) Clone() *Board {
	nb := *b
	nb.cells = make([]Color, len(b.cells))
	copy(nb.cells, b.cells)
	return &nb
}

// Equal reports whether both boards hold the same cells, turn and side to move.
func (b *Board) Equal(o *Board) bool {
	if b.size != o.size || b.turn != o.turn || b.CurrentPlayer() != o.CurrentPlayer() {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (b *Board) Size() int { return b.size }

// Turn is the number of moves played so far. Passes do not count.
func (b *Board) Turn() int { return b.turn }

// MaxTurn is the number of moves that fills the board.
func (b *Board) MaxTurn() int { return b.size*b.size - 4 }

// Passes is the number of forced passes seen so far.
func (b *Board) Passes() int { return b.passOffset }

// CurrentPlayer is the side to move.
func (b *Board) CurrentPlayer() Color {
	if (b.turn+b.passOffset)%2 == 0 {
		return Black
	}
	return White
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.size && col < b.size
}

func (b *Board) index(row, col int) int { return row*b.size + col }

// At returns the cell at (row, col). Off-board coordinates read as Empty.
func (b *Board) At(row, col int) Color {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[b.index(row, col)]
}

// Count returns how many cells hold c.
func (b *Board) Count(c Color) int { return b.discs[c] }

func (b *Board) Score() Score {
	return Score{Black: b.discs[Black], White: b.discs[White]}
}

// Winner returns the player with more discs, or Empty on a tie.
func (b *Board) Winner() Color {
	switch {
	case b.discs[Black] > b.discs[White]:
		return Black
	case b.discs[White] > b.discs[Black]:
		return White
	}
	return Empty
}

// Key returns the position key, kept up to date on every cell change.
func (b *Board) Key() Key { return b.key }

// set writes a cell and keeps the disc counts and the key in sync.
func (b *Board) set(i int, c Color) {
	old := b.cells[i]
	if old == c {
		return
	}
	b.cells[i] = c
	b.discs[old]--
	b.discs[c]++
	b.key.update(i, old, c)
}

// Outcome reports whether the game is over and why.
func (b *Board) Outcome() Status {
	if b.discs[Empty] == 0 {
		return BoardFull
	}
	if !b.HasLegalMove(Black) && !b.HasLegalMove(White) {
		return NoMovesLeft
	}
	return InProgress
}

func (b *Board) IsGameOver() bool { return b.Outcome() != InProgress }

// String renders the text form: one line per row using X, O and '.', then
// a line with the symbol of the side to move.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			sb.WriteByte(b.cells[b.index(row, col)].Symbol())
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte(b.CurrentPlayer().Symbol())
	return sb.String()
}

// Diagram renders the board with column letters and row numbers for humans.
func (b *Board) Diagram() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for col := 0; col < b.size; col++ {
		sb.WriteByte(byte('a' + col))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	for row := 0; row < b.size; row++ {
		fmt.Fprintf(&sb, "%2d ", row+1)
		for col := 0; col < b.size; col++ {
			sb.WriteByte(b.cells[b.index(row, col)].Symbol())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%s to move, X %d O %d", b.CurrentPlayer(), b.discs[Black], b.discs[White])
	return sb.String()
}
