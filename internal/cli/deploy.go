package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hosmod/hosmod/internal/app"
	"github.com/hosmod/hosmod/internal/libraries"
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy [project-dir]",
	Short: "Build, package and optionally install a mod",
	Long: `Build the mod project in Release and stage it under
package/<prefix>-v<modVersion>-<n>/<mod folder>. Each deploy gets a new,
higher build number.

Examples:
  hosmod deploy
  hosmod deploy ./IronTanks --install
  hosmod deploy -r -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDeploy,
}

// Deploy command flags
var (
	deployInstall     bool
	deployRefreshLibs bool
	deployModsPath    string
	deployManagedDir  string
)

func init() {
	deployCmd.Flags().BoolVarP(&deployInstall, FlagInstall, "i", false, DescInstall)
	deployCmd.Flags().BoolVarP(&deployRefreshLibs, FlagRefreshLibs, "r", false, DescRefreshLibs)
	deployCmd.Flags().StringVar(&deployModsPath, FlagModsPath, "", DescModsPath)
	deployCmd.Flags().StringVar(&deployManagedDir, FlagManagedDir, "", DescManagedDir)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	dir, err := projectDir(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(dir, filepath.Dir(dir))
	if err != nil {
		return err
	}

	if !deployRefreshLibs {
		printInfo("Skipping Libraries refresh (use --refresh-libs to enable)")
	}

	svc := newServices(cfg)
	result, err := svc.Deploy(cmd.Context(), app.DeployOptions{
		ProjectDir:  dir,
		Install:     deployInstall,
		RefreshLibs: deployRefreshLibs,
		Paths:       app.PathOverrides{ModsPath: deployModsPath, ManagedDir: deployManagedDir},
	})
	if err != nil {
		return err
	}

	reportLibraries(result.Libraries)
	printSuccess(fmt.Sprintf("Package created at %s", result.Layout.PackageDir))
	if result.InstalledPath != "" {
		printSuccess(fmt.Sprintf("Mod installed to %s", result.InstalledPath))
	}
	return nil
}

// reportLibraries prints what a Libraries refresh did; nil prints nothing.
func reportLibraries(result *libraries.Result) {
	if result == nil {
		return
	}
	if result.HarmonyVersion != "" {
		printInfo(fmt.Sprintf("Downloaded Harmony %s to %s",
			result.HarmonyVersion, filepath.Join(result.Dir, libraries.HarmonyDLL)))
	}
	printInfo(fmt.Sprintf("Refreshed %d libraries in %s", len(result.Copied), result.Dir))
}
