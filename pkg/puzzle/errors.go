package puzzle

import "errors"

// Generation errors.
var (
	ErrEmptyDictionary   = errors.New("puzzle: dictionary has no words")
	ErrNoRandSource      = errors.New("puzzle: random source is required")
	ErrAttemptsExhausted = errors.New("puzzle: could not complete puzzle within the attempt budget")
)
