// Package wordlist loads newline-separated word lists into a puzzle
// dictionary. Only entries of 4 or 6 ASCII letters are eligible, which keeps
// every word an exact run of two or three symbols.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/mesh-intelligence/puzzler/pkg/puzzle"
)

// Eligible word lengths in characters.
const (
	ShortLen = 2 * puzzle.SymbolWidth
	LongLen  = 3 * puzzle.SymbolWidth
)

// ErrNoEligibleWords is returned when a list contains no 4 or 6 letter words.
var ErrNoEligibleWords = errors.New("wordlist: no eligible words")

// Stats describes what a load kept and dropped.
type Stats struct {
	Lines      int // Lines read, blank lines included.
	Eligible   int // Distinct words kept.
	Duplicates int // Eligible entries seen more than once after lowercasing.
	Rejected   int // Non-blank lines with the wrong length or characters.
}

// Load reads the word list at path from fs.
func Load(fs afero.Fs, path string) (*puzzle.Dictionary, Stats, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("opening word list %s: %w", path, err)
	}
	defer f.Close()

	dict, stats, err := Read(f)
	if err != nil {
		return nil, stats, fmt.Errorf("reading word list %s: %w", path, err)
	}
	return dict, stats, nil
}

// Read parses a word list from r. Entries are trimmed and lowercased before
// filtering; duplicates keep their first position.
func Read(r io.Reader) (*puzzle.Dictionary, Stats, error) {
	var (
		stats Stats
		words []string
		seen  = make(map[string]bool)
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.Lines++
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w == "" {
			continue
		}
		if !Eligible(w) {
			stats.Rejected++
			continue
		}
		if seen[w] {
			stats.Duplicates++
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scanning: %w", err)
	}

	stats.Eligible = len(words)
	if len(words) == 0 {
		return nil, stats, ErrNoEligibleWords
	}
	return puzzle.NewDictionary(words), stats, nil
}

// Eligible reports whether w can be placed: 4 or 6 lowercase ASCII letters.
func Eligible(w string) bool {
	if len(w) != ShortLen && len(w) != LongLen {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
