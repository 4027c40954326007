package config

import (
	"time"

	"github.com/hosmod/hosmod/internal/discovery"
)

// Environment variable names. Keys are also accepted in .env files.
const (
	EnvModsPath       = discovery.ModsPathEnv
	EnvManagedDir     = discovery.ManagedDirEnv
	EnvDotnet         = "HOSMOD_DOTNET"
	EnvILSpy          = "HOSMOD_ILSPYCMD"
	EnvNuGetURL       = "HOSMOD_NUGET_URL"
	EnvHarmonyPackage = "HOSMOD_HARMONY_PACKAGE"
	EnvNuGetTimeout   = "HOSMOD_NUGET_TIMEOUT"
	EnvLogFile        = "HOSMOD_LOG_FILE"
	EnvLogMaxSize     = "HOSMOD_LOG_MAX_SIZE"
	EnvLogMaxBackups  = "HOSMOD_LOG_MAX_BACKUPS"
	EnvLogMaxAge      = "HOSMOD_LOG_MAX_AGE"
)

// EnvFileName is the dotenv file looked up in each search directory.
const EnvFileName = ".env"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DotnetPath: "dotnet",
		ILSpyPath:  "ilspycmd",
		NuGet: NuGetConfig{
			BaseURL:          "https://api.nuget.org/v3-flatcontainer",
			HarmonyPackageID: "lib.harmony.thin",
			Timeout:          60 * time.Second,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}
