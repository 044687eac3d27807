package othello

import "fmt"

var directions = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// maxFlips bounds the discs one move can flip: 8 rays of at most MaxSize-2.
const maxFlips = 8 * (MaxSize - 2)

// MoveState holds the minimal state needed to undo a move.
type MoveState struct {
	move       Move
	player     Color
	prevPasses int
	flipped    [maxFlips]uint8
	nflipped   int
}

// Move returns the placement this state undoes.
func (st *MoveState) Move() Move { return st.move }

// Flipped returns the number of discs the move turned over.
func (st *MoveState) Flipped() int { return st.nflipped }

// rayFlips counts the opponent discs between (row, col) and the first own
// disc along (dr, dc). A ray that runs off the board or into an empty cell
// captures nothing.
func (b *Board) rayFlips(row, col, dr, dc int, player Color) int {
	opp := player.Opponent()
	n := 0
	r, c := row+dr, col+dc
	for b.InBounds(r, c) {
		switch b.cells[b.index(r, c)] {
		case opp:
			n++
		case player:
			return n
		default:
			return 0
		}
		r, c = r+dr, c+dc
	}
	return 0
}

// Flips returns how many discs player would capture by placing on (row, col).
// Zero means the move is illegal.
func (b *Board) Flips(row, col int, player Color) int {
	if !b.InBounds(row, col) || b.cells[b.index(row, col)] != Empty {
		return 0
	}
	total := 0
	for _, d := range directions {
		total += b.rayFlips(row, col, d[0], d[1], player)
	}
	return total
}

func (b *Board) IsLegal(m Move, player Color) bool {
	return b.Flips(m.Row, m.Col, player) > 0
}

// LegalMoves lists every legal placement for player in row-major order.
func (b *Board) LegalMoves(player Color) []Move {
	return b.AppendLegalMoves(nil, player)
}

// AppendLegalMoves appends the legal moves of player to buf.
func (b *Board) AppendLegalMoves(buf []Move, player Color) []Move {
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.Flips(row, col, player) > 0 {
				buf = append(buf, Move{Row: row, Col: col})
			}
		}
	}
	return buf
}

func (b *Board) CountLegalMoves(player Color) int {
	n := 0
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.Flips(row, col, player) > 0 {
				n++
			}
		}
	}
	return n
}

func (b *Board) HasLegalMove(player Color) bool {
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.Flips(row, col, player) > 0 {
				return true
			}
		}
	}
	return false
}

// MakeMove places a disc for player at m, flips every capturing ray and
// advances the turn. When the opponent is left without a legal reply while
// player still has one, the turn is handed back to player as a forced pass.
// The move must be legal; use Apply for validated input.
func (b *Board) MakeMove(m Move, player Color) (st MoveState) {
	st.move = m
	st.player = player
	st.prevPasses = b.passOffset

	b.set(b.index(m.Row, m.Col), player)
	for _, d := range directions {
		n := b.rayFlips(m.Row, m.Col, d[0], d[1], player)
		r, c := m.Row, m.Col
		for i := 0; i < n; i++ {
			r, c = r+d[0], c+d[1]
			idx := b.index(r, c)
			b.set(idx, player)
			st.flipped[st.nflipped] = uint8(idx)
			st.nflipped++
		}
	}
	b.turn++

	next := player.Opponent()
	if !b.HasLegalMove(next) && b.HasLegalMove(player) {
		next = player
	}
	if b.CurrentPlayer() != next {
		b.passOffset++
	}
	return st
}

// settlePass hands the turn over when the side to move is stuck but the
// opponent can still play. The turn counter is left alone.
func (b *Board) settlePass() {
	if !b.HasLegalMove(b.CurrentPlayer()) && b.HasLegalMove(b.CurrentPlayer().Opponent()) {
		b.passOffset++
	}
}

// UnmakeMove restores the board exactly as it was before MakeMove.
func (b *Board) UnmakeMove(st MoveState) {
	opp := st.player.Opponent()
	for i := 0; i < st.nflipped; i++ {
		b.set(int(st.flipped[i]), opp)
	}
	b.set(b.index(st.move.Row, st.move.Col), Empty)
	b.turn--
	b.passOffset = st.prevPasses
}

// Apply validates and plays m for player.
func (b *Board) Apply(m Move, player Color) error {
	if !b.InBounds(m.Row, m.Col) {
		return fmt.Errorf("%s: %w", m, ErrOutOfBounds)
	}
	if b.Flips(m.Row, m.Col, player) == 0 {
		return fmt.Errorf("%s for %s: %w", m, player, ErrInvalidMove)
	}
	b.MakeMove(m, player)
	return nil
}

// Perft counts the leaf positions depth plies below b. A forced pass does
// not consume a ply, and a finished game counts as one leaf.
func Perft(b *Board, depth int) uint64 {
	if depth == 0 || b.IsGameOver() {
		return 1
	}
	player := b.CurrentPlayer()
	var nodes uint64
	for _, m := range b.LegalMoves(player) {
		st := b.MakeMove(m, player)
		nodes += Perft(b, depth-1)
		b.UnmakeMove(st)
	}
	return nodes
}
