package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hosmod/hosmod/internal/app"
)

// getDLLsCmd represents the get-dlls command
var getDLLsCmd = &cobra.Command{
	Use:   "get-dlls [project-dir]",
	Short: "Refresh Libraries and decompile the game",
	Long: `Copy the game assemblies into Libraries/, download Harmony when it
is missing, and decompile Assembly-CSharp.dll with ilspycmd into
decompiled/<game version>.

Examples:
  hosmod get-dlls
  hosmod get-dlls ./IronTanks --managed-dir "/games/Hex of Steel/Hex of Steel_Data/Managed"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGetDLLs,
}

// get-dlls command flags
var getDLLsManagedDir string

func init() {
	getDLLsCmd.Flags().StringVar(&getDLLsManagedDir, FlagManagedDir, "", DescManagedDir)
}

func runGetDLLs(cmd *cobra.Command, args []string) error {
	dir, err := projectDir(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(dir, filepath.Dir(dir))
	if err != nil {
		return err
	}

	printProgress("Refreshing Libraries and decompiling Assembly-CSharp.dll...")

	svc := newServices(cfg)
	result, err := svc.GetDLLs(cmd.Context(), app.GetDLLsOptions{
		ProjectDir: dir,
		Paths:      app.PathOverrides{ManagedDir: getDLLsManagedDir},
	})
	if err != nil {
		return err
	}

	reportLibraries(result.Libraries)
	printSuccess(fmt.Sprintf("Assembly decompiled to %s (game version %s)", result.DecompiledDir, result.GameVersion))
	return nil
}
