package puzzle

import (
	"fmt"
	"strings"
)

// SymbolWidth is the number of characters in one Symbol.
const SymbolWidth = 2

// Symbol is the two-character unit of placement. Words are placed on the
// board one symbol per cell.
type Symbol string

// Empty marks an unoccupied cell. It never appears inside a dictionary word.
const Empty Symbol = "--"

// Split partitions word into contiguous two-character symbols.
// It panics if word has an odd length; the word list loader only admits
// even-length entries.
func Split(word string) []Symbol {
	if len(word)%SymbolWidth != 0 {
		panic(fmt.Sprintf("puzzle: cannot split odd-length word %q", word))
	}
	res := make([]Symbol, 0, len(word)/SymbolWidth)
	for i := 0; i < len(word); i += SymbolWidth {
		res = append(res, Symbol(word[i:i+SymbolWidth]))
	}
	return res
}

// Join concatenates symbols back into a string.
func Join(symbols []Symbol) string {
	var b strings.Builder
	b.Grow(len(symbols) * SymbolWidth)
	for _, s := range symbols {
		b.WriteString(string(s))
	}
	return b.String()
}

// BuildVariants returns word itself followed by one variant per insertion
// offset 0..n, each with a single Empty symbol inserted at that offset.
// A word of n symbols yields n+2 variants.
//
// The padded variants let the same intersection cell be reached with the
// word shifted by one cell along its axis.
func BuildVariants(word string) []string {
	symbols := Split(word)
	res := make([]string, 0, len(symbols)+2)
	res = append(res, word)
	for i := 0; i <= len(symbols); i++ {
		padded := make([]Symbol, 0, len(symbols)+1)
		padded = append(padded, symbols[:i]...)
		padded = append(padded, Empty)
		padded = append(padded, symbols[i:]...)
		res = append(res, Join(padded))
	}
	return res
}

// symbolIndex returns the index of the first occurrence of s in symbols,
// or -1 when absent.
func symbolIndex(symbols []Symbol, s Symbol) int {
	for i, v := range symbols {
		if v == s {
			return i
		}
	}
	return -1
}
