package puzzle

import "strings"

// Size is the number of rows and columns on the board.
const Size = 4

// Point is a cell coordinate on the board.
type Point struct {
	Row int
	Col int
}

// Orientation is the axis a placement runs along.
type Orientation int

const (
	// Across placements keep the row fixed and advance the column.
	Across Orientation = iota
	// Down placements keep the column fixed and advance the row.
	Down
)

// Perpendicular returns the other orientation.
func (o Orientation) Perpendicular() Orientation {
	if o == Across {
		return Down
	}
	return Across
}

func (o Orientation) String() string {
	if o == Across {
		return "across"
	}
	return "down"
}

// Span returns n contiguous cells starting at anchor along o.
func Span(anchor Point, n int, o Orientation) []Point {
	res := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		if o == Across {
			res = append(res, Point{Row: anchor.Row, Col: anchor.Col + i})
		} else {
			res = append(res, Point{Row: anchor.Row + i, Col: anchor.Col})
		}
	}
	return res
}

// orientationOf reports the axis of an existing placement. A placement whose
// first and last cells share a row is Across; anything else is Down.
func orientationOf(placement []Point) Orientation {
	if len(placement) > 0 && placement[0].Row == placement[len(placement)-1].Row {
		return Across
	}
	return Down
}

// Board is the fixed 4×4 grid of symbols.
// The zero value is not usable; call NewBoard.
type Board struct {
	cells [Size][Size]Symbol
}

// NewBoard returns a board with every cell Empty.
func NewBoard() *Board {
	b := &Board{}
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c] = Empty
		}
	}
	return b
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// At returns the symbol at p, or Empty when p is off the board.
func (b *Board) At(p Point) Symbol {
	if !b.InBounds(p) {
		return Empty
	}
	return b.cells[p.Row][p.Col]
}

// Place writes the symbols of variant into the cells of placement, in
// order. It stops early if the two lengths disagree or a cell is off the
// board. Empty padding symbols are not written, so a padded variant never
// clears a cell that belongs to another word.
func (b *Board) Place(variant string, placement []Point) {
	for i, s := range Split(variant) {
		if i >= len(placement) || !b.InBounds(placement[i]) {
			return
		}
		if s == Empty {
			continue
		}
		p := placement[i]
		b.cells[p.Row][p.Col] = s
	}
}

// Lines returns the text visible along each of the 4 rows followed by each
// of the 4 columns. Empty cells are skipped, so a line reads as the
// concatenation of its occupied cells.
func (b *Board) Lines() []string {
	res := make([]string, 0, 2*Size)
	for r := 0; r < Size; r++ {
		res = append(res, b.line(func(i int) Symbol { return b.cells[r][i] }))
	}
	for c := 0; c < Size; c++ {
		res = append(res, b.line(func(i int) Symbol { return b.cells[i][c] }))
	}
	return res
}

func (b *Board) line(at func(i int) Symbol) string {
	var sb strings.Builder
	for i := 0; i < Size; i++ {
		if s := at(i); s != Empty {
			sb.WriteString(string(s))
		}
	}
	return sb.String()
}

// IsComplete reports whether every row and column holds at least two
// symbols. A line with a single symbol has not been crossed yet.
func (b *Board) IsComplete() bool {
	for _, l := range b.Lines() {
		if len(l) < 2*SymbolWidth {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// String renders the raw grid row by row, Empty cells included, one
// newline-terminated line per row.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Size * (Size*SymbolWidth + 1))
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sb.WriteString(string(b.cells[r][c]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
