package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hosmod/hosmod/internal/app"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <destination>",
	Short: "Create a new mod project",
	Long: `Create a new Hex of Steel mod project from the template.

The destination must be missing or empty unless --force is given. The
game's MODS and Managed directories must be discoverable. After rendering
the project, Libraries/ is populated and the game is decompiled into
decompiled/<game version> (skip with --skip-dlls).

Examples:
  hosmod new ./IronTanks --mod-name "Iron Tanks" --mod-author Ada
  hosmod new ./IronTanks --mod-name "Iron Tanks" --mod-author Ada --skip-dlls
  hosmod new ./Existing --mod-name "Existing" --mod-author Ada --force
  hosmod new ./Preview --mod-name "Preview" --mod-author Ada --template ./my-template --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

// New command flags
var (
	newModName        string
	newModAuthor      string
	newModDescription string
	newForce          bool
	newTemplate       string
	newSkipDLLs       bool
	newModsPath       string
	newManagedDir     string
	newDryRun         bool
)

func init() {
	newCmd.Flags().StringVar(&newModName, "mod-name", "", "Display name of the mod (prompted when omitted)")
	newCmd.Flags().StringVar(&newModAuthor, "mod-author", "", "Author written to the manifest (prompted when omitted)")
	newCmd.Flags().StringVar(&newModDescription, "mod-description", "", "Description written to the manifest")
	newCmd.Flags().BoolVarP(&newForce, FlagForce, "f", false, DescForce)
	newCmd.Flags().StringVar(&newTemplate, "template", "", "Render this template directory instead of the built-in one")
	newCmd.Flags().BoolVar(&newSkipDLLs, "skip-dlls", false, "Do not refresh Libraries or decompile the game")
	newCmd.Flags().StringVar(&newModsPath, FlagModsPath, "", DescModsPath)
	newCmd.Flags().StringVar(&newManagedDir, FlagManagedDir, "", DescManagedDir)
	newCmd.Flags().BoolVar(&newDryRun, FlagDryRun, false, DescDryRun)
}

func runNew(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := loadConfig(cwd)
	if err != nil {
		return err
	}

	if err := promptModInfo(&newModName, &newModAuthor); err != nil {
		return err
	}
	if err := ValidateModName(newModName); err != nil {
		return err
	}
	if err := ValidateQuotedText("mod author", newModAuthor); err != nil {
		return err
	}
	if err := ValidateQuotedText("mod description", newModDescription); err != nil {
		return err
	}

	printProgress(fmt.Sprintf("Creating mod project %q in %s", newModName, args[0]))
	if newForce {
		printWarning("Force mode enabled - existing files will be overwritten")
	}

	svc := newServices(cfg)
	result, err := svc.Scaffold(cmd.Context(), app.ScaffoldOptions{
		Destination: args[0],
		Mod: app.ModInfo{
			Name:        newModName,
			Author:      newModAuthor,
			Description: newModDescription,
		},
		Force:       newForce,
		TemplateDir: newTemplate,
		EnvFile:     cfg.EnvFile,
		SkipDLLs:    newSkipDLLs,
		DryRun:      newDryRun,
		Paths:       app.PathOverrides{ModsPath: newModsPath, ManagedDir: newManagedDir},
	})
	if err != nil {
		return err
	}

	if result.DryRun {
		printDryRun(result)
		return nil
	}

	if result.DLLs != nil {
		reportLibraries(result.DLLs.Libraries)
		printInfo(fmt.Sprintf("Assembly decompiled to %s", result.DLLs.DecompiledDir))
	}

	printSuccess(fmt.Sprintf("Created mod setup in %s", result.Path))
	printInfo(fmt.Sprintf("Rendered %d files", len(result.Generated.Files)))
	printHeader("Applied substitutions")
	printValues(result.Values)

	return nil
}

// printDryRun lists what a scaffold would write.
func printDryRun(result *app.ScaffoldResult) {
	printHeader(fmt.Sprintf("Dry run: %s would contain", result.Path))
	for _, file := range result.Generated.Files {
		printInfo("  " + file)
	}
	printInfo("  " + app.ProjectFileName)
	printInfo("  " + app.AssetsDirName + "/")
	printHeader("Substitutions")
	printValues(result.Values)
	printSuccess("Template is valid; nothing was written")
}
