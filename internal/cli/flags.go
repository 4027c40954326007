package cli

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagForce       = "force"
	FlagNoColor     = "no-color"
	FlagQuiet       = "quiet"
	FlagDebug       = "debug"
	FlagLogFile     = "log-file"
	FlagModsPath    = "mods-path"
	FlagManagedDir  = "managed-dir"
	FlagInstall     = "install"
	FlagRefreshLibs = "refresh-libs"
	FlagDryRun      = "dry-run"

	// Flag descriptions
	DescForce       = "Scaffold into a non-empty destination"
	DescNoColor     = "Disable colored output"
	DescQuiet       = "Suppress non-error output"
	DescDebug       = "Enable debug logging"
	DescLogFile     = "Also write debug logs to this rotating file"
	DescModsPath    = "Hex of Steel MODS directory (overrides HOS_MODS_PATH)"
	DescManagedDir  = "Hex of Steel Managed directory (overrides HOS_MANAGED_DIR)"
	DescInstall     = "Copy the packaged mod into the MODS directory"
	DescRefreshLibs = "Refresh Libraries/ before building"
	DescDryRun      = "Validate the template and list the files without writing anything"
)

// ValidateModName rejects names that cannot become a folder name or be
// placed inside the quoted strings of the generated sources.
func ValidateModName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("mod name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("mod name %q cannot contain path separators", name)
	}
	return ValidateQuotedText("mod name", name)
}

// ValidateQuotedText rejects values that would end or escape a quoted string
// in Manifest.json or AssemblyInfo.cs.
func ValidateQuotedText(what, value string) error {
	if strings.ContainsAny(value, `"\`) {
		return fmt.Errorf("%s %q cannot contain '\"' or '\\'", what, value)
	}
	return nil
}

// projectDir returns the project directory argument, defaulting to ".", as
// an absolute path.
func projectDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project directory: %w", err)
	}
	return abs, nil
}
