package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/hosmod/hosmod/internal/app"
	"github.com/hosmod/hosmod/internal/build"
	"github.com/hosmod/hosmod/internal/config"
	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/toolchain"
)

// Version information, defaulting to the embedded build metadata.
var (
	Version   = build.Version()
	GitCommit = build.GitCommit()
	BuildDate = build.BuildDate()
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
	globalLogFile string
)

// Output destinations, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// newServices builds the workflow collaborators; tests substitute fakes.
var newServices = app.NewServices

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hosmod",
	Short: "Hex of Steel mod scaffolder and packager",
	Long: `hosmod creates, builds and packages Hex of Steel mods.

Use "hosmod new <destination>" to:
  1. Render a C# mod project from the template
  2. Copy the game assemblies into Libraries/
  3. Decompile the game for reference under decompiled/<game version>

Use "hosmod deploy" inside a project to build it in Release, stage the
result under package/ and optionally install it into the game's MODS folder.

Game directories are detected automatically. Set HOS_MODS_PATH and
HOS_MANAGED_DIR in the environment or in a .env file to override them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
		debug.SetOutput(stderr)
		if globalNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	_ = debug.Close()
	if err != nil {
		printError(err)
		os.Exit(exitCode(err))
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)
	rootCmd.PersistentFlags().StringVar(&globalLogFile, FlagLogFile, "", DescLogFile)

	// Add subcommands
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(getDLLsCmd)
	rootCmd.AddCommand(versionCmd)
}

// exitCode maps err to the process exit status. A failing external tool's
// own exit code is passed through.
func exitCode(err error) int {
	var toolErr *toolchain.ToolError
	if errors.As(err, &toolErr) && toolErr.ExitCode > 0 {
		return toolErr.ExitCode
	}
	return 1
}

// loadConfig resolves configuration from .env files in dirs (closest first)
// and the environment, and starts the debug log file when one is configured.
func loadConfig(dirs ...string) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{SearchDirs: dirs})
	if err != nil {
		return nil, err
	}

	logFile := cfg.Log.File
	if globalLogFile != "" {
		logFile = globalLogFile
	}
	if logFile != "" {
		debug.SetFile(debug.FileOptions{
			Path:       logFile,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		})
	}
	return cfg, nil
}

// printError prints an error message to stderr. Errors are shown even in quiet mode.
func printError(err error) {
	fmt.Fprintf(stderr, "%s %v\n", errorStyle.Render("Error:"), err)
}
