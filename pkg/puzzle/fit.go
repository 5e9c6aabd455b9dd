package puzzle

import "math/rand/v2"

// FindFit searches for a placement of candidate that crosses a word already
// on the board. It walks the distinct visible lines that are registered
// words, then every symbol the candidate shares with that word, then the
// candidate's variants in an order shuffled with rng. The first placement
// that stays on the board and is not disruptive wins.
//
// A candidate never crosses a line that reads as itself.
func (p *Puzzle) FindFit(candidate string, variants []string, rng *rand.Rand) (Fit, bool) {
	candSymbols := distinct(Split(candidate))
	seen := make(map[string]bool)

	for _, line := range p.board.Lines() {
		if line == "" || line == candidate || seen[line] {
			continue
		}
		seen[line] = true

		existing, ok := p.placed[line]
		if !ok {
			continue
		}
		lineSymbols := Split(line)

		for _, shared := range candSymbols {
			if symbolIndex(lineSymbols, shared) < 0 {
				continue
			}
			for _, i := range rng.Perm(len(variants)) {
				variant := variants[i]
				placement, ok := crossing(existing, variant, shared)
				if !ok {
					continue
				}
				if p.IsDisruptive(variant, placement) {
					continue
				}
				return Fit{Variant: variant, Placement: placement}, true
			}
		}
	}
	return Fit{}, false
}

// crossing anchors variant perpendicular to existing so that shared lands
// on the cell existing already holds it in. It reports false when the
// resulting span would leave the board.
func crossing(existing Entry, variant string, shared Symbol) ([]Point, bool) {
	variantSymbols := Split(variant)
	candOffset := symbolIndex(variantSymbols, shared)
	existOffset := symbolIndex(Split(existing.Variant), shared)
	if candOffset < 0 || existOffset < 0 || len(existing.Placement) == 0 {
		return nil, false
	}

	start := existing.Placement[0]
	o := existing.Orientation()

	var anchor Point
	if o == Across {
		anchor = Point{Row: start.Row - candOffset, Col: start.Col + existOffset}
	} else {
		anchor = Point{Row: start.Row + existOffset, Col: start.Col - candOffset}
	}

	placement := Span(anchor, len(variantSymbols), o.Perpendicular())
	for _, pt := range placement {
		if pt.Row < 0 || pt.Row >= Size || pt.Col < 0 || pt.Col >= Size {
			return nil, false
		}
	}
	return placement, true
}

// distinct returns symbols with repeats removed, keeping first occurrences.
func distinct(symbols []Symbol) []Symbol {
	res := make([]Symbol, 0, len(symbols))
	for _, s := range symbols {
		if symbolIndex(res, s) < 0 {
			res = append(res, s)
		}
	}
	return res
}
