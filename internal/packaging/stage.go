package packaging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/fsutil"
)

// LibrariesDirName is the directory holding assemblies inside a mod folder.
const LibrariesDirName = "Libraries"

// Layout is one allocated package directory.
//
//	<PackageDir>/<mod folder>/Libraries
type Layout struct {
	// PackageDir is the allocated "<prefix>-v<version>-<n>" directory.
	PackageDir string
	// ModRoot is the mod folder inside PackageDir; this is what gets installed.
	ModRoot string
	// LibrariesDir is ModRoot/Libraries.
	LibrariesDir string
}

// Prepare allocates the next package directory for version under packageRoot
// and creates its mod folder and Libraries directory.
func Prepare(packageRoot, packageID, version, modFolderName string) (*Layout, error) {
	if err := os.MkdirAll(packageRoot, 0755); err != nil {
		return nil, fmt.Errorf("failed to create package root %s: %w", packageRoot, err)
	}

	packageDir := Allocate(packageRoot, packageID, version)
	layout := &Layout{
		PackageDir:   packageDir,
		ModRoot:      filepath.Join(packageDir, modFolderName),
		LibrariesDir: filepath.Join(packageDir, modFolderName, LibrariesDirName),
	}

	if err := os.MkdirAll(layout.LibrariesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create package directory %s: %w", layout.LibrariesDir, err)
	}

	debug.DebugValue("[packaging] Package directory", packageDir)
	return layout, nil
}

// Stage copies the manifest, the built assembly and, when present, the
// contents of assetsDir into the layout. Assets merge into the mod folder.
func (l *Layout) Stage(manifestPath, assemblyPath, assetsDir string) error {
	if err := fsutil.CopyFile(manifestPath, filepath.Join(l.ModRoot, ManifestFileName)); err != nil {
		return fmt.Errorf("failed to stage manifest: %w", err)
	}

	if err := fsutil.CopyFile(assemblyPath, filepath.Join(l.LibrariesDir, filepath.Base(assemblyPath))); err != nil {
		return fmt.Errorf("failed to stage assembly: %w", err)
	}

	if assetsDir != "" && fsutil.IsDir(assetsDir) {
		if err := fsutil.CopyTree(assetsDir, l.ModRoot); err != nil {
			return fmt.Errorf("failed to stage assets: %w", err)
		}
	}

	return nil
}

// Install replaces installRoot/<mod folder> with a copy of modRoot and
// returns the installed path.
func Install(modRoot, installRoot string) (string, error) {
	if err := os.MkdirAll(installRoot, 0755); err != nil {
		return "", fmt.Errorf("failed to create install directory %s: %w", installRoot, err)
	}

	target := filepath.Join(installRoot, filepath.Base(modRoot))
	debug.Debug("[packaging] Installing %s -> %s", modRoot, target)

	if err := fsutil.ReplaceTree(modRoot, target); err != nil {
		return "", fmt.Errorf("failed to install mod: %w", err)
	}
	return target, nil
}
