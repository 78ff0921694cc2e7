package commands

import (
	"fmt"
	"os"
	"runtime"

	"github.com/contentforge-io/cma-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// VersionInfo carries the build metadata baked in at link time.
type VersionInfo struct {
	Version   string `json:"version"   yaml:"version"`
	Commit    string `json:"commit"    yaml:"commit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version:   version,
				Commit:    commit,
				BuildDate: date,
				GoVersion: runtime.Version(),
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(info)
			case constants.FormatYAML:
				return renderYAML(info)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "cma %s (commit %s, built %s, %s)\n",
					info.Version, info.Commit, info.BuildDate, info.GoVersion)

				return nil
			}
		},
	}
}
