package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/puzzler/internal/version"
)

const modulePath = "github.com/mesh-intelligence/puzzler"

type versionInfo struct {
	Version   string `json:"version"`
	Module    string `json:"module"`
	GitSHA    string `json:"git_sha"`
	BuildTime string `json:"build_time"`
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the puzzler version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if flags.jsonMode {
				return json.NewEncoder(out).Encode(versionInfo{
					Version:   version.Version,
					Module:    modulePath,
					GitSHA:    version.GitSHA,
					BuildTime: version.BuildTime,
				})
			}
			fmt.Fprintf(out, "puzzler v%s\nmodule: %s\n", version.Version, modulePath)
			if flags.verbose {
				fmt.Fprintf(out, "commit: %s\nbuilt: %s\n", version.GitSHA, version.BuildTime)
			}
			return nil
		},
	}
}
