package app

import (
	"context"
	"path/filepath"

	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/fsutil"
	"github.com/hosmod/hosmod/internal/libraries"
	"github.com/hosmod/hosmod/internal/packaging"
)

const (
	// PackageDirName holds every staged build of a project.
	PackageDirName = "package"
	// AssetsDirName holds files merged into the mod folder on deploy.
	AssetsDirName = "assets"
)

// DeployOptions configures Deploy.
type DeployOptions struct {
	ProjectDir  string
	Install     bool
	RefreshLibs bool
	Paths       PathOverrides
}

// DeployResult describes a completed deploy.
type DeployResult struct {
	Settings      *ProjectSettings
	ModVersion    string
	Layout        *packaging.Layout
	Libraries     *libraries.Result // nil when the refresh was skipped
	InstalledPath string            // empty unless installed
}

// Deploy builds the project in Release, stages the manifest, assembly and
// assets into a fresh package directory and optionally installs the result.
func (s *Services) Deploy(ctx context.Context, opts DeployOptions) (*DeployResult, error) {
	debug.DebugSection("[app] Deploy workflow start")
	debug.DebugValue("[app] Project directory", opts.ProjectDir)
	debug.DebugValue("[app] Install", opts.Install)
	debug.DebugValue("[app] Refresh libraries", opts.RefreshLibs)

	settings, err := LoadProject(opts.ProjectDir)
	if err != nil {
		return nil, err
	}
	result := &DeployResult{Settings: settings}

	if opts.RefreshLibs {
		libs, err := s.RefreshLibraries(ctx, opts.ProjectDir, opts.Paths)
		if err != nil {
			return nil, err
		}
		result.Libraries = libs
	}

	manifestPath := filepath.Join(opts.ProjectDir, packaging.ManifestFileName)
	if !fsutil.Exists(manifestPath) {
		return nil, NewArtifactMissingError(packaging.ManifestFileName, manifestPath)
	}
	projectPath := filepath.Join(opts.ProjectDir, settings.ProjectFilename)
	if !fsutil.Exists(projectPath) {
		return nil, NewArtifactMissingError("project file", projectPath)
	}

	manifest, err := packaging.ReadManifest(manifestPath)
	if err != nil {
		return nil, NewDeployError("failed to read manifest", err)
	}
	result.ModVersion = manifest.ModVersion

	layout, err := packaging.Prepare(
		filepath.Join(opts.ProjectDir, PackageDirName),
		settings.PackagePrefix,
		manifest.ModVersion,
		settings.ModFolderName,
	)
	if err != nil {
		return nil, NewDeployError("failed to prepare package directory", err)
	}
	result.Layout = layout

	if err := s.Tools.Build(ctx, opts.ProjectDir, projectPath); err != nil {
		return nil, err
	}

	dll := settings.OutputDLLPath(opts.ProjectDir)
	if !fsutil.Exists(dll) {
		return nil, NewArtifactMissingError("built assembly", dll)
	}

	if err := layout.Stage(manifestPath, dll, filepath.Join(opts.ProjectDir, AssetsDirName)); err != nil {
		return nil, NewDeployError("failed to stage package", err)
	}

	if opts.Install {
		mods, err := s.ModsDir(opts.Paths)
		if err != nil {
			return nil, NewAppError(PathsMissing, "cannot install the mod", err)
		}
		installed, err := packaging.Install(layout.ModRoot, mods)
		if err != nil {
			return nil, NewDeployError("failed to install mod", err)
		}
		result.InstalledPath = installed
	}

	return result, nil
}
