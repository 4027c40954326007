package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/hosmod/hosmod/internal/debug"
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// SearchDirs are checked for a .env file, closest first. A value in an
	// earlier directory beats the same key in a later one.
	SearchDirs []string
	// SkipEnvironment ignores the process environment.
	SkipEnvironment bool
}

// Load resolves the configuration: defaults, then .env files from the
// farthest to the closest search directory, then the process environment.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault(EnvDotnet, defaults.DotnetPath)
	v.SetDefault(EnvILSpy, defaults.ILSpyPath)
	v.SetDefault(EnvNuGetURL, defaults.NuGet.BaseURL)
	v.SetDefault(EnvHarmonyPackage, defaults.NuGet.HarmonyPackageID)
	v.SetDefault(EnvNuGetTimeout, defaults.NuGet.Timeout)
	v.SetDefault(EnvLogMaxSize, defaults.Log.MaxSizeMB)
	v.SetDefault(EnvLogMaxBackups, defaults.Log.MaxBackups)
	v.SetDefault(EnvLogMaxAge, defaults.Log.MaxAgeDays)

	var loaded []string
	for i := len(opts.SearchDirs) - 1; i >= 0; i-- {
		path := filepath.Join(opts.SearchDirs[i], EnvFileName)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.MergeInConfig(); err != nil {
			return nil, unreadableEnvFile(path, err)
		}
		loaded = append([]string{path}, loaded...)
		debug.Debug("[config] Merged %s", path)
	}

	if !opts.SkipEnvironment {
		v.AutomaticEnv()
	}

	modsPath, err := expandSetting(EnvModsPath, v.GetString(EnvModsPath))
	if err != nil {
		return nil, err
	}
	managedDir, err := expandSetting(EnvManagedDir, v.GetString(EnvManagedDir))
	if err != nil {
		return nil, err
	}
	logFile, err := expandSetting(EnvLogFile, v.GetString(EnvLogFile))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ModsPath:   modsPath,
		ManagedDir: managedDir,
		DotnetPath: v.GetString(EnvDotnet),
		ILSpyPath:  v.GetString(EnvILSpy),
		NuGet: NuGetConfig{
			BaseURL:          strings.TrimRight(v.GetString(EnvNuGetURL), "/"),
			HarmonyPackageID: v.GetString(EnvHarmonyPackage),
			Timeout:          v.GetDuration(EnvNuGetTimeout),
		},
		Log: LogConfig{
			File:       logFile,
			MaxSizeMB:  v.GetInt(EnvLogMaxSize),
			MaxBackups: v.GetInt(EnvLogMaxBackups),
			MaxAgeDays: v.GetInt(EnvLogMaxAge),
		},
		EnvFiles: loaded,
		EnvFile:  opts.ClosestEnvFile(),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	debug.DebugValue("[config] ModsPath", cfg.ModsPath)
	debug.DebugValue("[config] ManagedDir", cfg.ManagedDir)
	return cfg, nil
}

// ClosestEnvFile returns the .env path in the first search directory; this is
// where users are told to put overrides.
func (opts LoadOptions) ClosestEnvFile() string {
	if len(opts.SearchDirs) == 0 {
		return EnvFileName
	}
	return filepath.Join(opts.SearchDirs[0], EnvFileName)
}

// expandSetting trims and expands a path-valued setting. Empty stays empty.
func expandSetting(key, value string) (string, error) {
	path, err := ExpandPath(strings.TrimSpace(value))
	if err != nil {
		return "", &ConfigError{Type: ConfigInvalid, Key: key, Message: "invalid path", Cause: err}
	}
	return path, nil
}

// ExpandPath expands ~ to the home directory and makes path absolute.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:]), nil
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return absPath, nil
}
