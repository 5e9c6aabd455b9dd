package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/puzzler/internal/paths"
	"github.com/mesh-intelligence/puzzler/internal/sqlite"
	"github.com/mesh-intelligence/puzzler/pkg/types"
)

type historyFlags struct {
	limit      int
	exportPath string
	importPath string
}

// historyOutput is the JSON shape of the history command.
type historyOutput struct {
	Summary sqlite.Summary `json:"summary"`
	Runs    []types.Run    `json:"runs"`
}

func newHistoryCmd() *cobra.Command {
	var hf historyFlags

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Long: `History lists runs stored by "generate --record", newest first, followed by
a summary. --export writes every run to a JSONL file and --import loads runs
from one; runs already present are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, hf)
		},
	}

	cmd.Flags().IntVarP(&hf.limit, "limit", "l", 10, "number of runs to list (0 = all)")
	cmd.Flags().StringVar(&hf.exportPath, "export", "", "write all runs to this JSONL file")
	cmd.Flags().StringVar(&hf.importPath, "import", "", "load runs from this JSONL file")

	return cmd
}

func runHistory(cmd *cobra.Command, hf historyFlags) error {
	if hf.limit < 0 {
		return exitError(exitUserError, fmt.Errorf("invalid limit %d", hf.limit))
	}

	configDir, err := resolveConfigDir()
	if err != nil {
		return exitError(exitSysError, fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := newViper(configDir)
	if err != nil {
		return exitError(exitUserError, err)
	}
	dataDir, err := resolveDataDir(v.GetString(cfgKeyDataDir))
	if err != nil {
		return exitError(exitSysError, fmt.Errorf("resolve data dir: %w", err))
	}

	store, err := sqlite.Open(dataDir, paths.HistoryFileName)
	if err != nil {
		return exitError(exitSysError, err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if hf.importPath != "" {
		n, err := store.ImportJSONL(hf.importPath)
		if err != nil {
			return exitError(exitUserError, fmt.Errorf("import: %w", err))
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d runs from %s\n", n, hf.importPath)
	}
	if hf.exportPath != "" {
		n, err := store.ExportJSONL(hf.exportPath)
		if err != nil {
			return exitError(exitSysError, fmt.Errorf("export: %w", err))
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d runs to %s\n", n, hf.exportPath)
		return nil
	}

	runs, err := store.List(hf.limit)
	if err != nil {
		return exitError(exitSysError, err)
	}
	sum, err := store.Summary()
	if err != nil {
		return exitError(exitSysError, err)
	}

	if flags.jsonMode {
		if runs == nil {
			runs = []types.Run{}
		}
		data, err := json.MarshalIndent(historyOutput{Summary: sum, Runs: runs}, "", "  ")
		if err != nil {
			return exitError(exitSysError, err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	printHistory(out, runs, sum)
	return nil
}

func printHistory(out io.Writer, runs []types.Run, sum sqlite.Summary) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%s  %s  seed=%d  %s  %dms  %d attempts\n",
			r.RunID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Seed, r.State, r.ElapsedMS, r.Attempts)
		fmt.Fprintf(out, "  words: %s\n", strings.Join(r.Words, " "))
		for _, line := range strings.Split(strings.TrimRight(r.Board, "\n"), "\n") {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	fmt.Fprintf(out, "\n%d runs, %d complete, average %.1fms, %d attempts total\n",
		sum.Runs, sum.Complete, sum.AverageMS, sum.TotalAttempts)
}
