package othello

import (
	"fmt"
	"strconv"
	"strings"
)

// Move is a placement at (Row, Col), both zero based. Row 0 is printed as 1
// and column 0 as 'a'.
type Move struct {
	Row int
	Col int
}

// PassMove stands for "no placement". It never enters the history.
var PassMove = Move{Row: -1, Col: -1}

func (m Move) IsPass() bool { return m == PassMove }

func (m Move) String() string {
	if m.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// ParseMove reads a coordinate such as "d3" (case insensitive) or "pass".
// Bounds against a particular board are checked when the move is applied.
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "pass" {
		return PassMove, nil
	}
	if len(s) < 2 || s[0] < 'a' || s[0] >= 'a'+MaxSize {
		return PassMove, fmt.Errorf("%q: %w", s, ErrBadNotation)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 || row > MaxSize {
		return PassMove, fmt.Errorf("%q: %w", s, ErrBadNotation)
	}
	return Move{Row: row - 1, Col: int(s[0] - 'a')}, nil
}

// ParseBoard reads the text form produced by Board.String. Rows may be split
// by newlines, spaces or '/', and the final field names the side to move
// (X for black, O for white). The turn counter is derived from the disc count
// since every move adds exactly one disc.
func ParseBoard(text string) (*Board, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '/' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	})
	if len(fields) < MinSize+1 {
		return nil, fmt.Errorf("%d fields: %w", len(fields), ErrBadNotation)
	}
	rows, side := fields[:len(fields)-1], fields[len(fields)-1]
	size := len(rows)
	if !validSize(size) {
		return nil, fmt.Errorf("%d rows: %w", size, ErrBoardSize)
	}

	b := emptyBoard(size)
	for row, line := range rows {
		if len(line) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", row+1, len(line), size, ErrBadNotation)
		}
		for col := 0; col < size; col++ {
			c, ok := colorFromSymbol(line[col])
			if !ok {
				return nil, fmt.Errorf("row %d: unknown cell %q: %w", row+1, line[col], ErrBadNotation)
			}
			b.set(b.index(row, col), c)
		}
	}

	toMove, ok := colorFromSymbol(strings.ToUpper(side)[0])
	if !ok || toMove == Empty || len(side) != 1 {
		return nil, fmt.Errorf("side to move %q: %w", side, ErrBadNotation)
	}
	b.turn = max(b.discs[Black]+b.discs[White]-4, 0)
	if b.CurrentPlayer() != toMove {
		b.passOffset = 1
	}
	return b, nil
}

func colorFromSymbol(ch byte) (Color, bool) {
	switch ch {
	case 'X', 'x', 'B', 'b':
		return Black, true
	case 'O', 'o', 'W', 'w':
		return White, true
	case '.', '_', '-':
		return Empty, true
	}
	return Empty, false
}
