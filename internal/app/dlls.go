package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/fsutil"
	"github.com/hosmod/hosmod/internal/libraries"
	"github.com/hosmod/hosmod/internal/toolchain"
)

// DecompiledDirName holds decompiled game sources, one subdirectory per game version.
const DecompiledDirName = "decompiled"

// RefreshLibraries rebuilds projectDir/Libraries from the game's Managed directory.
func (s *Services) RefreshLibraries(ctx context.Context, projectDir string, o PathOverrides) (*libraries.Result, error) {
	managed, err := s.ManagedDir(o)
	if err != nil {
		return nil, NewAppError(PathsMissing, "cannot refresh Libraries", err)
	}

	result, err := libraries.Refresh(ctx, projectDir, managed, s.Harmony)
	if err != nil {
		var missing *libraries.MissingDLLError
		if errors.As(err, &missing) {
			return nil, NewAppError(ArtifactMissing, "cannot refresh Libraries", err)
		}
		return nil, NewAppError(DeployFailed, "failed to refresh Libraries", err)
	}
	return result, nil
}

// GetDLLsOptions configures GetDLLs.
type GetDLLsOptions struct {
	ProjectDir string
	Paths      PathOverrides
}

// GetDLLsResult describes a completed GetDLLs run.
type GetDLLsResult struct {
	Libraries     *libraries.Result
	GameVersion   string
	DecompiledDir string
}

// GetDLLs refreshes Libraries, decompiles the game assembly and stores the
// output under decompiled/<game version>, replacing any previous copy.
func (s *Services) GetDLLs(ctx context.Context, opts GetDLLsOptions) (*GetDLLsResult, error) {
	debug.DebugSection("[app] GetDLLs workflow start")
	debug.DebugValue("[app] Project directory", opts.ProjectDir)

	libs, err := s.RefreshLibraries(ctx, opts.ProjectDir, opts.Paths)
	if err != nil {
		return nil, err
	}

	managed, err := s.ManagedDir(opts.Paths)
	if err != nil {
		return nil, NewAppError(PathsMissing, "cannot locate the game assembly", err)
	}
	assembly := filepath.Join(managed, libraries.GameAssembly)
	if !fsutil.Exists(assembly) {
		return nil, NewArtifactMissingError(libraries.GameAssembly, assembly)
	}

	tmp, err := os.MkdirTemp("", "hos_decompile_")
	if err != nil {
		return nil, NewDecompileError("failed to create temporary directory", err)
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	if err := s.Tools.Decompile(ctx, opts.ProjectDir, assembly, tmp); err != nil {
		return nil, err
	}

	version, err := toolchain.ReadVersion(tmp)
	if err != nil {
		return nil, NewDecompileError("failed to detect the game version", err)
	}

	dest := filepath.Join(opts.ProjectDir, DecompiledDirName, version)
	if err := fsutil.ReplaceTree(tmp, dest); err != nil {
		return nil, NewDecompileError(fmt.Sprintf("failed to store decompiled sources in %s", dest), err)
	}

	return &GetDLLsResult{Libraries: libs, GameVersion: version, DecompiledDir: dest}, nil
}
