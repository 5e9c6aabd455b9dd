package puzzle

import "math/rand/v2"

// Dictionary is the pool of eligible words. It serves both as the source of
// random candidates and as the oracle for line legality.
//
// Words must already be 4 or 6 characters long; NewDictionary does not
// re-validate them.
type Dictionary struct {
	words    []string
	index    map[string]int
	variants [][]string
}

// NewDictionary builds a Dictionary from words, dropping duplicates and
// keeping the first occurrence order. Variants are computed once per word.
func NewDictionary(words []string) *Dictionary {
	d := &Dictionary{
		words: make([]string, 0, len(words)),
		index: make(map[string]int, len(words)),
	}
	for _, w := range words {
		if _, ok := d.index[w]; ok {
			continue
		}
		d.index[w] = len(d.words)
		d.words = append(d.words, w)
		d.variants = append(d.variants, BuildVariants(w))
	}
	return d
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Contains reports whether word is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.index[word]
	return ok
}

// Words returns the candidate pool in insertion order. The slice is shared;
// callers must not modify it.
func (d *Dictionary) Words() []string {
	return d.words
}

// Variants returns the precomputed variants of word, or nil if word is not
// in the dictionary.
func (d *Dictionary) Variants(word string) []string {
	i, ok := d.index[word]
	if !ok {
		return nil
	}
	return d.variants[i]
}

// Pick returns a word chosen uniformly at random using rng.
// It panics on an empty dictionary.
func (d *Dictionary) Pick(rng *rand.Rand) string {
	return d.words[rng.IntN(len(d.words))]
}
