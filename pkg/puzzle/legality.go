package puzzle

// maxLineLen is the longest legal line text: three symbols.
const maxLineLen = 3 * SymbolWidth

// IsBreaking reports whether text is an illegal line. A line of at most one
// symbol is always legal. Longer lines must be at most three symbols and a
// dictionary word, which makes a fully filled row or column always illegal.
func (d *Dictionary) IsBreaking(text string) bool {
	return len(text) > SymbolWidth && (len(text) > maxLineLen || !d.Contains(text))
}

// IsDisruptive reports whether committing variant at placement would leave
// any row or column breaking, or would overwrite a cell already holding a
// different symbol. The board is not modified.
//
// The check is made against exactly what Place would write: padding symbols
// leave the underlying cell visible.
func (p *Puzzle) IsDisruptive(variant string, placement []Point) bool {
	for i, s := range Split(variant) {
		if i >= len(placement) {
			break
		}
		if s == Empty {
			continue
		}
		if cur := p.board.At(placement[i]); cur != Empty && cur != s {
			return true
		}
	}

	overlay := p.board.Clone()
	overlay.Place(variant, placement)
	for _, line := range overlay.Lines() {
		if p.dict.IsBreaking(line) {
			return true
		}
	}
	return false
}

// IsComplete reports whether every row and column of the puzzle has been
// crossed, that is, holds at least two symbols.
func (p *Puzzle) IsComplete() bool {
	return p.board.IsComplete()
}
