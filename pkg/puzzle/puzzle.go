// Package puzzle builds 4×4 interlocking word grids.
//
// Words are split into two-character symbols and placed one symbol per
// cell. A word joins the board only by crossing a word already on it, and
// only if afterwards every row and column reads as either a single symbol,
// nothing at all, or a dictionary word of two or three symbols.
package puzzle

// SeedAnchor and SeedOrientation fix where the first word is placed.
var (
	SeedAnchor      = Point{Row: 0, Col: 1}
	SeedOrientation = Down
)

// Entry records how a word was committed: the variant written and the full
// span of cells it covered, padding cell included.
type Entry struct {
	Word      string
	Variant   string
	Placement []Point
}

// Orientation returns the axis the entry runs along.
func (e Entry) Orientation() Orientation {
	return orientationOf(e.Placement)
}

// Cells returns the cells that actually hold the word's symbols. The
// padding cell of a padded variant is never written and is excluded.
func (e Entry) Cells() []Point {
	res := make([]Point, 0, len(e.Placement))
	for i, s := range Split(e.Variant) {
		if i >= len(e.Placement) {
			break
		}
		if s != Empty {
			res = append(res, e.Placement[i])
		}
	}
	return res
}

// Fit is a legal placement found by FindFit.
type Fit struct {
	Variant   string
	Placement []Point
}

// Puzzle is one in-progress generation: a board, the registry of placed
// words, and the dictionary used to judge legality. A Puzzle is owned by a
// single goroutine.
type Puzzle struct {
	board  *Board
	placed map[string]Entry
	order  []string
	dict   *Dictionary
}

// New returns a puzzle with an empty board and registry.
func New(dict *Dictionary) *Puzzle {
	return &Puzzle{
		board:  NewBoard(),
		placed: make(map[string]Entry),
		dict:   dict,
	}
}

// Seed places word unconditionally at SeedAnchor along SeedOrientation.
// An empty board cannot be disrupted, so no legality check is made.
func (p *Puzzle) Seed(word string) {
	placement := Span(SeedAnchor, len(word)/SymbolWidth, SeedOrientation)
	p.Commit(word, Fit{Variant: word, Placement: placement})
}

// Commit writes fit to the board and records it under word.
func (p *Puzzle) Commit(word string, fit Fit) {
	p.board.Place(fit.Variant, fit.Placement)
	if _, ok := p.placed[word]; !ok {
		p.order = append(p.order, word)
	}
	p.placed[word] = Entry{Word: word, Variant: fit.Variant, Placement: fit.Placement}
}

// Board returns the live board. Callers must not modify it.
func (p *Puzzle) Board() *Board {
	return p.board
}

// Placed reports whether word has been committed.
func (p *Puzzle) Placed(word string) bool {
	_, ok := p.placed[word]
	return ok
}

// Entry returns the registry entry for word.
func (p *Puzzle) Entry(word string) (Entry, bool) {
	e, ok := p.placed[word]
	return e, ok
}

// Entries returns the registry in commit order.
func (p *Puzzle) Entries() []Entry {
	res := make([]Entry, 0, len(p.order))
	for _, w := range p.order {
		res = append(res, p.placed[w])
	}
	return res
}
