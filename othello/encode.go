package othello

// Position keys are the base-3 number whose digits are the cells: Empty=0,
// Black=1, White=2, cell i weighted by 3^i. 32 digits fit a uint64 word
// (3^32 < 2^64), so a 16×16 board needs 8 words. The mapping is a bijection
// for a fixed board size, so equal keys always mean equal positions.

const (
	radix        = 3
	cellsPerWord = 32
	KeyWords     = (MaxSize*MaxSize + cellsPerWord - 1) / cellsPerWord
)

// A radix below 3 cannot tell Empty apart from one of the players. This
// constant overflows, and the package stops compiling, if radix is lowered.
const _ uint = radix - 3

// Key is a comparable position key, usable directly as a map key.
type Key [KeyWords]uint64

var pow3 [cellsPerWord]uint64

func init() {
	p := uint64(1)
	for i := range pow3 {
		pow3[i] = p
		p *= radix
	}
}

// update moves cell i from old to c. The delta may be negative; unsigned
// wraparound still lands on the exact value because the word is in range
// before and after.
func (k *Key) update(i int, old, c Color) {
	k[i/cellsPerWord] += (uint64(c) - uint64(old)) * pow3[i%cellsPerWord]
}

// Encode computes the key of b from scratch.
func Encode(b *Board) Key {
	var k Key
	for i, c := range b.cells {
		k[i/cellsPerWord] += uint64(c) * pow3[i%cellsPerWord]
	}
	return k
}

// Decode rebuilds the cells of a size×size board from a key.
func Decode(k Key, size int) []Color {
	cells := make([]Color, size*size)
	for i := range cells {
		cells[i] = Color(k[i/cellsPerWord] / pow3[i%cellsPerWord] % radix)
	}
	return cells
}
