package puzzle

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// State is the phase of a generation.
type State int

const (
	// Seeded means the first word is on the board.
	Seeded State = iota
	// Growing means candidates are being fitted.
	Growing
	// Complete means every row and column has been crossed.
	Complete
	// Exhausted means the attempt budget ran out or the context ended
	// before completion.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Seeded:
		return "seeded"
	case Growing:
		return "growing"
	case Complete:
		return "complete"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options tunes a Generator.
type Options struct {
	// MaxAttempts caps the number of candidate picks after seeding.
	// Zero means no cap.
	MaxAttempts int

	// OnCommit, if set, is called after each word is committed.
	OnCommit func(Entry)
}

// Result is the outcome of one generation.
type Result struct {
	Board    *Board
	Entries  []Entry
	Attempts int
	Elapsed  time.Duration
	State    State
}

// Generator drives the seed and grow loop for one dictionary.
type Generator struct {
	dict *Dictionary
	rng  *rand.Rand
	opts Options
}

// NewGenerator returns a Generator drawing all randomness from rng.
func NewGenerator(dict *Dictionary, rng *rand.Rand, opts Options) (*Generator, error) {
	if dict == nil || dict.Len() == 0 {
		return nil, ErrEmptyDictionary
	}
	if rng == nil {
		return nil, ErrNoRandSource
	}
	if opts.MaxAttempts < 0 {
		opts.MaxAttempts = 0
	}
	return &Generator{dict: dict, rng: rng, opts: opts}, nil
}

// NewRand returns a PCG-backed source seeded from seed. Two generators
// built from the same seed and dictionary produce the same boards.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate seeds a fresh board and keeps fitting random candidates until
// the board is complete. Candidates already on the board are discarded.
//
// It returns ErrAttemptsExhausted when MaxAttempts picks fail to complete
// the board, or the context error if ctx ends first. The partial Result is
// returned alongside either error.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	start := time.Now()
	pz := New(g.dict)
	pz.Seed(g.dict.Pick(g.rng))
	g.notify(pz, pz.order[0])

	res := &Result{State: Growing}
	finish := func(state State) *Result {
		res.Board = pz.Board().Clone()
		res.Entries = pz.Entries()
		res.Elapsed = time.Since(start)
		res.State = state
		return res
	}

	for !pz.IsComplete() {
		if err := ctx.Err(); err != nil {
			return finish(Exhausted), fmt.Errorf("generate after %d attempts: %w", res.Attempts, err)
		}
		if g.opts.MaxAttempts > 0 && res.Attempts >= g.opts.MaxAttempts {
			return finish(Exhausted), fmt.Errorf("%w (%d attempts)", ErrAttemptsExhausted, res.Attempts)
		}
		res.Attempts++

		word := g.dict.Pick(g.rng)
		// The registry holds one entry per word, so a word is placed at most once.
		if pz.Placed(word) {
			continue
		}
		fit, ok := pz.FindFit(word, g.dict.Variants(word), g.rng)
		if !ok {
			continue
		}
		pz.Commit(word, fit)
		g.notify(pz, word)
	}
	return finish(Complete), nil
}

func (g *Generator) notify(pz *Puzzle, word string) {
	if g.opts.OnCommit == nil {
		return
	}
	if e, ok := pz.Entry(word); ok {
		g.opts.OnCommit(e)
	}
}
