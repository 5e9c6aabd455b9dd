package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/puzzler/internal/paths"
	"github.com/mesh-intelligence/puzzler/internal/sqlite"
	"github.com/mesh-intelligence/puzzler/pkg/types"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration and create the history database",
		Long: `Init creates the configuration directory with a default config.yaml and
the data directory holding the run history. An existing config.yaml is left
unchanged, so running init twice is safe.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return exitError(exitSysError, fmt.Errorf("resolve config dir: %w", err))
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return exitError(exitSysError, fmt.Errorf("create config directory: %w", err))
	}

	written, err := writeConfigIfMissing(configDir, types.DefaultConfig())
	if err != nil {
		return exitError(exitSysError, fmt.Errorf("write config: %w", err))
	}

	// Read the config back so a data_dir set in an existing file is honored.
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
		return exitError(exitSysError, fmt.Errorf("initialize history: %w", err))
	}
	version, err := store.SchemaVersion()
	if err != nil {
		store.Close()
		return exitError(exitSysError, fmt.Errorf("initialize history: %w", err))
	}
	if err := store.Close(); err != nil {
		return exitError(exitSysError, fmt.Errorf("finalize history: %w", err))
	}

	configPath := filepath.Join(configDir, paths.ConfigFileName)
	out := cmd.OutOrStdout()
	if written {
		fmt.Fprintf(out, "Wrote %s\n", configPath)
	} else {
		fmt.Fprintf(out, "Kept existing %s\n", configPath)
	}
	fmt.Fprintf(out, "History database: %s (schema v%d)\n", store.Path(), version)
	return nil
}
