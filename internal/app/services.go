package app

import (
	"context"
	"errors"
	"strings"

	"github.com/hosmod/hosmod/internal/config"
	"github.com/hosmod/hosmod/internal/discovery"
	"github.com/hosmod/hosmod/internal/libraries"
	"github.com/hosmod/hosmod/internal/nuget"
	"github.com/hosmod/hosmod/internal/toolchain"
)

// Services bundles the collaborators the workflows depend on.
type Services struct {
	Config  *config.Config
	Env     discovery.Environment
	Tools   *toolchain.Tools
	Harmony libraries.HarmonyFetcher
}

// NewServices wires the real collaborators for cfg.
func NewServices(cfg *config.Config) *Services {
	client := nuget.NewClient(cfg.NuGet.BaseURL, cfg.NuGet.Timeout)
	packageID := cfg.NuGet.HarmonyPackageID
	env := discovery.SystemEnvironment()
	env.EnvFile = cfg.EnvFile

	return &Services{
		Config: cfg,
		Env:    env,
		Tools:  toolchain.NewTools(toolchain.ExecRunner{}, cfg.DotnetPath, cfg.ILSpyPath),
		Harmony: libraries.HarmonyFetcherFunc(func(ctx context.Context) (string, []byte, error) {
			return client.FetchLatestAssembly(ctx, packageID, libraries.HarmonyDLL)
		}),
	}
}

// PathOverrides are command-line replacements for the configured directories.
type PathOverrides struct {
	ModsPath   string
	ManagedDir string
}

func pick(flag, configured string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	return configured
}

// ModsDir resolves the MODS directory.
func (s *Services) ModsDir(o PathOverrides) (string, error) {
	return discovery.ModsDir(s.Env, pick(o.ModsPath, s.Config.ModsPath)).Resolve(discovery.IsDir)
}

// ManagedDir resolves the game's Managed directory.
func (s *Services) ManagedDir(o PathOverrides) (string, error) {
	return discovery.ManagedDir(s.Env, pick(o.ManagedDir, s.Config.ManagedDir)).Resolve(discovery.IsDir)
}

// ValidatePaths resolves both game directories and reports every one that
// could not be found.
func (s *Services) ValidatePaths(o PathOverrides) error {
	var errs []error
	if _, err := s.ModsDir(o); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.ManagedDir(o); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return NewAppError(PathsMissing, "required Hex of Steel directories are missing", errors.Join(errs...))
}
