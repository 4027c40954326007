package config

import (
	"net/url"
)

// Validate checks the resolved configuration.
func Validate(cfg *Config) error {
	if cfg.DotnetPath == "" {
		return invalidValue(EnvDotnet, "build tool path cannot be empty")
	}
	if cfg.ILSpyPath == "" {
		return invalidValue(EnvILSpy, "decompiler path cannot be empty")
	}

	u, err := url.Parse(cfg.NuGet.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalidValue(EnvNuGetURL, "feed URL must be an absolute http(s) URL")
	}
	if cfg.NuGet.HarmonyPackageID == "" {
		return invalidValue(EnvHarmonyPackage, "package id cannot be empty")
	}
	if cfg.NuGet.Timeout <= 0 {
		return invalidValue(EnvNuGetTimeout, "timeout must be positive")
	}

	if cfg.Log.MaxSizeMB < 0 {
		return invalidValue(EnvLogMaxSize, "max size cannot be negative")
	}
	if cfg.Log.MaxBackups < 0 {
		return invalidValue(EnvLogMaxBackups, "max backups cannot be negative")
	}
	if cfg.Log.MaxAgeDays < 0 {
		return invalidValue(EnvLogMaxAge, "max age cannot be negative")
	}
	return nil
}
