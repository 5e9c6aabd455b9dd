// Package cli implements the puzzler command-line interface: generating
// puzzles from a word list, inspecting the run history, and writing the
// default configuration.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/puzzler/internal/monitoring"
	"github.com/mesh-intelligence/puzzler/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

var flags rootFlags

// NewRootCmd creates the top-level "puzzler" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}

	root := &cobra.Command{
		Use:   "puzzler",
		Short: "Generate 4x4 interlocking word grids",
		Long: "puzzler builds 4x4 crossword-style grids from a word list. Words are cut\n" +
			"into two-letter symbols and crossed through shared symbols until every\n" +
			"row and column reads as a word.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				monitoring.SetLogger(monitoring.Writer(cmd.ErrOrStderr(), "puzzler: "))
			} else {
				monitoring.SetLogger(nil)
			}
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/puzzler)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory for run history (default: $XDG_DATA_HOME/puzzler)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newHistoryCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
// SIGINT and SIGTERM cancel the running generation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, NewRootCmd(), os.Stderr)
	stop()
	os.Exit(code)
}

// run executes root and maps its error to an exit code.
func run(ctx context.Context, root *cobra.Command, stderr io.Writer) int {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "Error:", err)

	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// codedError carries the exit code a failure should produce.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

// exitError wraps err so that Execute exits with code.
func exitError(code int, err error) error {
	return &codedError{code: code, err: err}
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flags.configDir)
}

// resolveDataDir returns the data directory from flag, config, env, or default.
func resolveDataDir(configValue string) (string, error) {
	return paths.ResolveDataDir(flags.dataDir, configValue)
}
