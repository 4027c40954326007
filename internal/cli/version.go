package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/hosmod/hosmod/internal/app"
	"github.com/hosmod/hosmod/internal/template/placeholder"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display the hosmod version, its build metadata and the game
version new projects target.

Examples:
  hosmod version
  hosmod version --short
  hosmod version --json`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version information as JSON")
}

// VersionInfo is what the version command reports.
type VersionInfo struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	GoVersion   string `json:"go_version"`
	Platform    string `json:"platform"`
	GameVersion string `json:"supported_game_version"`
	ModVersion  string `json:"initial_mod_version"`
}

func currentVersion() VersionInfo {
	return VersionInfo{
		Version:     Version,
		Commit:      GitCommit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		GameVersion: app.SupportedGameVersion,
		ModVersion:  app.InitialModVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := currentVersion()

	switch {
	case versionShort:
		fmt.Fprintln(stdout, info.Version)
	case versionJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode version info: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
	default:
		fmt.Fprintf(stdout, "hosmod %s\n", info.Version)
		writeValuesTable(stdout, placeholder.Values{
			"commit":                 info.Commit,
			"build date":             info.BuildDate,
			"go":                     info.GoVersion,
			"platform":               info.Platform,
			"supported game version": info.GameVersion,
			"initial mod version":    info.ModVersion,
		})
	}
	return nil
}
