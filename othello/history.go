package othello

// Snapshot is one history entry: the board after a move, who moves next and
// who made the move. The initial entry has Mover == Empty.
type Snapshot struct {
	Board  *Board
	ToMove Color
	Mover  Color
}

// History is the undo stack of a game. It always holds the initial snapshot
// plus one entry per move played since, so a game from the standard start
// has len == turn+1.
type History struct {
	entries []Snapshot
}

func NewHistory(initial *Board) *History {
	h := &History{}
	h.entries = append(h.entries, Snapshot{
		Board:  initial.Clone(),
		ToMove: initial.CurrentPlayer(),
		Mover:  Empty,
	})
	return h
}

// Record pushes a deep copy of b, taken right after mover played on it.
func (h *History) Record(b *Board, mover Color) {
	h.entries = append(h.entries, Snapshot{
		Board:  b.Clone(),
		ToMove: b.CurrentPlayer(),
		Mover:  mover,
	})
}

func (h *History) Len() int { return len(h.entries) }

// Top returns the latest snapshot. The board is a fresh copy.
func (h *History) Top() Snapshot {
	s := h.entries[len(h.entries)-1]
	s.Board = s.Board.Clone()
	return s
}

// Undo drops the latest run of moves made by one player and returns the
// snapshot that is now on top. A run is longer than one move only after a
// forced pass, so the pass is reverted together with the move that caused it.
// With only the initial snapshot left it returns ErrUndoUnderflow and leaves
// the stack untouched.
func (h *History) Undo() (Snapshot, error) {
	if len(h.entries) <= 1 {
		return Snapshot{}, ErrUndoUnderflow
	}
	mover := h.entries[len(h.entries)-1].Mover
	h.entries = h.entries[:len(h.entries)-1]
	for len(h.entries) > 1 && h.entries[len(h.entries)-1].Mover == mover {
		h.entries = h.entries[:len(h.entries)-1]
	}
	return h.Top(), nil
}
