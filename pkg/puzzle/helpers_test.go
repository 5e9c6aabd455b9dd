package puzzle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// testWords is a small English word list of 4 and 6 letter entries.
var testWords = []string{
	"able", "acid", "aged", "also", "area", "army", "away", "baby", "back", "ball",
	"band", "bank", "base", "bath", "bear", "beat", "been", "beer", "bell", "belt",
	"best", "bill", "bird", "blow", "blue", "boat", "body", "bomb", "bond", "bone",
	"book", "boom", "born", "boss", "both", "bowl", "bulk", "burn", "bush", "busy",
	"call", "calm", "came", "camp", "card", "care", "case", "cash", "cast", "cell",
	"chat", "chip", "city", "club", "coal", "coat", "code", "cold", "come", "cook",
	"cool", "cope", "copy", "core", "cost", "crew", "crop", "dark", "data", "date",
	"dawn", "days", "dead", "deal", "dean", "dear", "debt", "deep", "deny", "desk",
	"onto", "once", "only", "open", "oral", "over", "pace", "pack", "page", "paid",
	"tent", "test", "that", "them", "then", "they", "thin", "this", "thus", "tide",
	"action", "coated", "dealer", "became", "before", "bottle", "carbon", "center",
	"decade", "detect", "eating", "ending", "enough", "entire", "father", "format",
	"garden", "health", "indeed", "island", "itself", "manner", "master", "member",
	"method", "number", "object", "office", "orange", "output", "parent", "person",
	"result", "return", "season", "second", "senate", "simple", "strong", "system",
	"tenant", "theory", "things", "thesis", "though", "thread", "toward", "wealth",
}

// assertLegal fails the test if any line of pz is breaking or any registered
// word no longer occupies its recorded cells.
func assertLegal(t *testing.T, pz *Puzzle) {
	t.Helper()
	for i, line := range pz.Board().Lines() {
		require.False(t, pz.dict.IsBreaking(line), "line %d %q is breaking\n%s", i, line, pz.Board())
	}
	for _, e := range pz.Entries() {
		cells := e.Cells()
		symbols := Split(e.Word)
		require.Len(t, cells, len(symbols), "entry %q", e.Word)
		for i, c := range cells {
			require.Equal(t, symbols[i], pz.Board().At(c), "entry %q cell %v", e.Word, c)
		}
	}
}

// denseSymbols is a small alphabet whose every 2 and 3 symbol sequence is a
// word, so most generations can fill the board.
var denseSymbols = []string{"aa", "bb", "cc", "dd"}

// denseWords returns every 2 and 3 symbol sequence over denseSymbols.
func denseWords() []string {
	var words []string
	for _, a := range denseSymbols {
		for _, b := range denseSymbols {
			words = append(words, a+b)
		}
	}
	for _, a := range denseSymbols {
		for _, b := range denseSymbols {
			for _, c := range denseSymbols {
				words = append(words, a+b+c)
			}
		}
	}
	return words
}

// completingSeed returns the first seed in [1, 64] whose generation over
// dict completes within budget attempts.
func completingSeed(t *testing.T, dict *Dictionary, budget int) uint64 {
	t.Helper()
	for seed := uint64(1); seed <= 64; seed++ {
		g, err := NewGenerator(dict, NewRand(seed), Options{MaxAttempts: budget})
		require.NoError(t, err)
		if res, err := g.Generate(context.Background()); err == nil && res.State == Complete {
			return seed
		}
	}
	t.Fatalf("no seed in [1, 64] completes within %d attempts", budget)
	return 0
}
