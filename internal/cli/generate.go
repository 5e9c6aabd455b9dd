package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/puzzler/internal/monitoring"
	"github.com/mesh-intelligence/puzzler/internal/paths"
	"github.com/mesh-intelligence/puzzler/internal/sqlite"
	"github.com/mesh-intelligence/puzzler/internal/wordlist"
	"github.com/mesh-intelligence/puzzler/pkg/puzzle"
	"github.com/mesh-intelligence/puzzler/pkg/types"
)

// wordFS is the filesystem word lists are read from. Tests replace it.
var wordFS afero.Fs = afero.NewOsFs()

// now is the clock used for time-based seeds. Tests replace it.
var now = time.Now

type generateFlags struct {
	timeout time.Duration
}

// batchSummary is printed after the last run in JSON mode.
type batchSummary struct {
	Iterations int   `json:"iterations"`
	Completed  int   `json:"completed"`
	TotalMS    int64 `json:"total_ms"`
	AverageMS  int64 `json:"average_ms"`
}

func newGenerateCmd() *cobra.Command {
	var gf generateFlags

	cmd := &cobra.Command{
		Use:   "generate [dictionary] [iterations]",
		Short: "Generate one or more puzzles",
		Long: `Generate builds puzzles from a newline-separated word list, printing each
grid and how long it took, then the total and average time.

Only 4 and 6 letter words are used. Each run gets its own seed, printed with
--verbose and stored with --record, so a run can be replayed with
--seed <seed> --iterations 1.

Values come from flags, then PUZZLER_* environment variables, then
config.yaml, then built-in defaults.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, gf)
		},
	}

	def := types.DefaultConfig()
	cmd.Flags().StringP("dict", "d", def.Dictionary, "path to a newline-separated word list")
	cmd.Flags().IntP("iterations", "n", def.Iterations, "number of puzzles to generate")
	cmd.Flags().Int("max-attempts", def.MaxAttempts, "candidate picks per puzzle before giving up (0 = unbounded)")
	cmd.Flags().Uint64("seed", 0, "base random seed (0 = time-based)")
	cmd.Flags().Bool("record", false, "store each run in the history database")
	cmd.Flags().DurationVar(&gf.timeout, "timeout", 0, "abandon a puzzle after this long (0 = no limit)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, gf generateFlags) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return exitError(exitSysError, fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := newViper(configDir)
	if err != nil {
		return exitError(exitUserError, err)
	}
	if err := bindFlags(v, cmd.Flags(), map[string]string{
		"dict":         cfgKeyDictionary,
		"iterations":   cfgKeyIterations,
		"max-attempts": cfgKeyMaxAttempts,
		"seed":         cfgKeySeed,
		"record":       cfgKeyRecord,
	}); err != nil {
		return exitError(exitSysError, err)
	}

	// Positional arguments: word list path, then iteration count.
	if len(args) > 0 {
		v.Set(cfgKeyDictionary, args[0])
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return exitError(exitUserError, fmt.Errorf("invalid iterations %q: %w", args[1], err))
		}
		v.Set(cfgKeyIterations, n)
	}

	cfg, err := decodeConfig(v)
	if err != nil {
		return exitError(exitUserError, err)
	}

	dict, stats, err := wordlist.Load(wordFS, cfg.Dictionary)
	if err != nil {
		return exitError(exitUserError, err)
	}
	monitoring.Logf("loaded %d words from %s (%d lines, %d rejected, %d duplicates)",
		stats.Eligible, cfg.Dictionary, stats.Lines, stats.Rejected, stats.Duplicates)

	var store *sqlite.Store
	if cfg.Record {
		dataDir, err := resolveDataDir(cfg.DataDir)
		if err != nil {
			return exitError(exitSysError, fmt.Errorf("resolve data dir: %w", err))
		}
		store, err = sqlite.Open(dataDir, paths.HistoryFileName)
		if err != nil {
			return exitError(exitSysError, err)
		}
		defer store.Close()
	}

	baseSeed := cfg.Seed
	if baseSeed == 0 {
		baseSeed = uint64(now().UnixNano())
	}

	d := &driver{
		cfg:      cfg,
		dict:     dict,
		store:    store,
		timeout:  gf.timeout,
		out:      cmd.OutOrStdout(),
		jsonMode: flags.jsonMode,
	}
	return d.runAll(cmd.Context(), baseSeed)
}

// driver repeats the generation loop and reports each run.
type driver struct {
	cfg      types.Config
	dict     *puzzle.Dictionary
	store    *sqlite.Store
	timeout  time.Duration
	out      io.Writer
	jsonMode bool
}

func (d *driver) runAll(ctx context.Context, baseSeed uint64) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var total int64
	completed := 0
	for i := 0; i < d.cfg.Iterations; i++ {
		seed := baseSeed + uint64(i)
		run, err := d.runOne(ctx, seed)
		if run != nil {
			total += run.ElapsedMS
			if run.State == types.RunStateComplete {
				completed++
			}
		}
		if err != nil {
			return err
		}
	}

	average := total / int64(d.cfg.Iterations)
	if d.jsonMode {
		if err := json.NewEncoder(d.out).Encode(batchSummary{
			Iterations: d.cfg.Iterations,
			Completed:  completed,
			TotalMS:    total,
			AverageMS:  average,
		}); err != nil {
			return exitError(exitSysError, err)
		}
	} else {
		fmt.Fprintf(d.out, "\nCompleted %d iterations in %dms. Average: %dms.\n", d.cfg.Iterations, total, average)
	}

	if failed := d.cfg.Iterations - completed; failed > 0 {
		return exitError(exitSysError, fmt.Errorf("%d of %d puzzles could not be completed", failed, d.cfg.Iterations))
	}
	return nil
}

// runOne generates a single puzzle. An exhausted attempt budget or an
// expired timeout is reported and recorded but does not stop the batch;
// cancellation of ctx does.
func (d *driver) runOne(ctx context.Context, seed uint64) (*types.Run, error) {
	g, err := puzzle.NewGenerator(d.dict, puzzle.NewRand(seed), puzzle.Options{
		MaxAttempts: d.cfg.MaxAttempts,
		OnCommit: func(e puzzle.Entry) {
			monitoring.Logf("placed %s %s at %v", e.Word, e.Orientation(), e.Cells())
		},
	})
	if err != nil {
		return nil, exitError(exitUserError, err)
	}

	runCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	res, genErr := g.Generate(runCtx)
	if genErr != nil && ctx.Err() != nil {
		return nil, exitError(exitSysError, genErr)
	}
	if genErr != nil && !errors.Is(genErr, puzzle.ErrAttemptsExhausted) && !errors.Is(genErr, context.DeadlineExceeded) {
		return nil, exitError(exitSysError, genErr)
	}

	run := newRun(d.cfg.Dictionary, seed, res)
	monitoring.Logf("seed %d: %s after %d attempts, %d words", seed, run.State, run.Attempts, len(run.Words))

	if d.store != nil {
		if err := d.store.Record(run); err != nil {
			return run, exitError(exitSysError, fmt.Errorf("record run: %w", err))
		}
		monitoring.Logf("recorded run %s", run.RunID)
	}

	if err := d.report(run, genErr); err != nil {
		return run, exitError(exitSysError, err)
	}
	return run, nil
}

func (d *driver) report(run *types.Run, genErr error) error {
	if d.jsonMode {
		return json.NewEncoder(d.out).Encode(run)
	}
	if genErr != nil {
		_, err := fmt.Fprintf(d.out, "\n%s\nPuzzle abandoned after %dms: %v\n", run.Board, run.ElapsedMS, genErr)
		return err
	}
	_, err := fmt.Fprintf(d.out, "\n%s\nPuzzle completed in: %dms\n", run.Board, run.ElapsedMS)
	return err
}

// newRun converts a generation result into a run record.
func newRun(dictionary string, seed uint64, res *puzzle.Result) *types.Run {
	state := types.RunStateExhausted
	if res.State == puzzle.Complete {
		state = types.RunStateComplete
	}
	words := make([]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		words = append(words, e.Word)
	}
	return &types.Run{
		Seed:       seed,
		Dictionary: dictionary,
		Words:      words,
		Attempts:   res.Attempts,
		State:      state,
		Board:      res.Board.String(),
		ElapsedMS:  res.Elapsed.Milliseconds(),
	}
}
