package puzzle

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dict    *Dictionary
		rngNil  bool
		wantErr error
	}{
		{name: "nil dictionary", dict: nil, wantErr: ErrEmptyDictionary},
		{name: "empty dictionary", dict: NewDictionary(nil), wantErr: ErrEmptyDictionary},
		{name: "missing random source", dict: NewDictionary([]string{"abcd"}), rngNil: true, wantErr: ErrNoRandSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := NewRand(1)
			if tt.rngNil {
				rng = nil
			}
			_, err := NewGenerator(tt.dict, rng, Options{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerate_ExhaustsAttemptBudget(t *testing.T) {
	// With a single word every pick after seeding is already placed.
	dict := NewDictionary([]string{"abcd"})
	g, err := NewGenerator(dict, NewRand(7), Options{MaxAttempts: 25})
	require.NoError(t, err)

	res, err := g.Generate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAttemptsExhausted))
	require.NotNil(t, res)
	assert.Equal(t, Exhausted, res.State)
	assert.Equal(t, 25, res.Attempts)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "abcd", res.Entries[0].Word)
	assert.Equal(t, "--ab----\n--cd----\n--------\n--------\n", res.Board.String())
}

func TestGenerate_StopsOnCanceledContext(t *testing.T) {
	dict := NewDictionary(testWords)
	g, err := NewGenerator(dict, NewRand(7), Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := g.Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, Exhausted, res.State)
	assert.Equal(t, 0, res.Attempts)
	assert.Len(t, res.Entries, 1)
}

func TestGenerate_DeterministicUnderSeed(t *testing.T) {
	dict := NewDictionary(testWords)

	run := func(seed uint64) (*Result, error) {
		g, err := NewGenerator(dict, NewRand(seed), Options{MaxAttempts: 5000})
		require.NoError(t, err)
		return g.Generate(context.Background())
	}

	for _, seed := range []uint64{1, 2, 99} {
		a, errA := run(seed)
		b, errB := run(seed)

		assert.Equal(t, errA == nil, errB == nil, "seed %d", seed)
		assert.Equal(t, a.Board.String(), b.Board.String(), "seed %d", seed)
		if diff := cmp.Diff(a.Entries, b.Entries); diff != "" {
			t.Errorf("seed %d: entries differ (-first +second):\n%s", seed, diff)
		}
		assert.Equal(t, a.Attempts, b.Attempts, "seed %d", seed)
		assert.Equal(t, a.State, b.State, "seed %d", seed)
	}
}

func TestGenerate_ReachesComplete(t *testing.T) {
	dict := NewDictionary(denseWords())
	seed := completingSeed(t, dict, 20000)

	var committed int
	g, err := NewGenerator(dict, NewRand(seed), Options{
		MaxAttempts: 20000,
		OnCommit:    func(Entry) { committed++ },
	})
	require.NoError(t, err)

	res, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Complete, res.State)
	assert.True(t, res.Board.IsComplete(), "board not complete\n%s", res.Board)
	assert.LessOrEqual(t, res.Attempts, 20000)
	assert.Equal(t, len(res.Entries), committed)

	for i, line := range res.Board.Lines() {
		assert.GreaterOrEqual(t, len(line), 2*SymbolWidth, "line %d %q", i, line)
		assert.False(t, dict.IsBreaking(line), "line %d %q is breaking\n%s", i, line, res.Board)
	}
	for _, e := range res.Entries {
		symbols := Split(e.Word)
		cells := e.Cells()
		require.Len(t, cells, len(symbols), "entry %q", e.Word)
		for i, c := range cells {
			assert.Equal(t, symbols[i], res.Board.At(c), "entry %q cell %v", e.Word, c)
		}
	}
}

func TestGenerate_CompletedRunReplays(t *testing.T) {
	dict := NewDictionary(denseWords())
	seed := completingSeed(t, dict, 20000)

	run := func() *Result {
		g, err := NewGenerator(dict, NewRand(seed), Options{MaxAttempts: 20000})
		require.NoError(t, err)
		res, err := g.Generate(context.Background())
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	assert.Equal(t, Complete, a.State)
	assert.Equal(t, Complete, b.State)
	assert.Equal(t, a.Board.String(), b.Board.String())
	assert.Equal(t, a.Attempts, b.Attempts)
	if diff := cmp.Diff(a.Entries, b.Entries); diff != "" {
		t.Errorf("entries differ (-first +second):\n%s", diff)
	}
}

func TestGenerate_ResultIsLegal(t *testing.T) {
	dict := NewDictionary(testWords)

	for seed := uint64(10); seed < 20; seed++ {
		var committed []string
		g, err := NewGenerator(dict, NewRand(seed), Options{
			MaxAttempts: 5000,
			OnCommit:    func(e Entry) { committed = append(committed, e.Word) },
		})
		require.NoError(t, err)

		res, err := g.Generate(context.Background())
		if err != nil {
			require.ErrorIs(t, err, ErrAttemptsExhausted)
			assert.Equal(t, Exhausted, res.State)
		} else {
			assert.Equal(t, Complete, res.State)
			assert.True(t, res.Board.IsComplete())
		}

		for _, line := range res.Board.Lines() {
			assert.False(t, dict.IsBreaking(line), "seed %d line %q\n%s", seed, line, res.Board)
		}

		words := make([]string, 0, len(res.Entries))
		for _, e := range res.Entries {
			words = append(words, e.Word)
		}
		assert.Equal(t, words, committed, "seed %d", seed)
		assert.NotEmpty(t, committed)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "seeded", Seeded.String())
	assert.Equal(t, "growing", Growing.String())
	assert.Equal(t, "complete", Complete.String())
	assert.Equal(t, "exhausted", Exhausted.String())
	assert.Equal(t, "State(9)", State(9).String())
}
