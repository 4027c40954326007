package config

import "time"

// Config is the resolved tool configuration. It is built once at startup and
// passed explicitly; nothing in the process environment is modified.
type Config struct {
	// ModsPath overrides MODS directory discovery (HOS_MODS_PATH).
	ModsPath string
	// ManagedDir overrides Managed directory discovery (HOS_MANAGED_DIR).
	ManagedDir string
	// DotnetPath is the .NET build tool executable (HOSMOD_DOTNET).
	DotnetPath string
	// ILSpyPath is the decompiler executable (HOSMOD_ILSPYCMD).
	ILSpyPath string
	// NuGet configures the package feed used for Harmony.
	NuGet NuGetConfig
	// Log configures the optional rotating debug log file.
	Log LogConfig
	// EnvFiles lists the .env files that were merged, closest first.
	EnvFiles []string
	// EnvFile is the .env file in the closest search directory, whether or
	// not it exists. Error messages point users at it.
	EnvFile string
}

// NuGetConfig configures the dependency package feed.
type NuGetConfig struct {
	// BaseURL is the flat container root (HOSMOD_NUGET_URL).
	BaseURL string
	// HarmonyPackageID is the package providing 0Harmony.dll (HOSMOD_HARMONY_PACKAGE).
	HarmonyPackageID string
	// Timeout bounds each feed request (HOSMOD_NUGET_TIMEOUT).
	Timeout time.Duration
}

// LogConfig configures the debug log file.
type LogConfig struct {
	// File is the log file path; empty disables the file sink (HOSMOD_LOG_FILE).
	File string
	// MaxSizeMB is the size at which the file rotates (HOSMOD_LOG_MAX_SIZE).
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept (HOSMOD_LOG_MAX_BACKUPS).
	MaxBackups int
	// MaxAgeDays is how long rotated files are kept (HOSMOD_LOG_MAX_AGE).
	MaxAgeDays int
}
