package toolchain

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/hosmod/hosmod/internal/debug"
)

const (
	// DefaultDotnet is the build tool looked up on PATH.
	DefaultDotnet = "dotnet"
	// DefaultILSpy is the decompiler looked up on PATH.
	DefaultILSpy = "ilspycmd"
	// BuildConfiguration is the configuration every deploy builds.
	BuildConfiguration = "Release"
	// VersionSourceFile holds the game version constant in decompiled output.
	VersionSourceFile = "MultiplayerManager.cs"
)

var versionPattern = regexp.MustCompile(`VERSION\s*=\s*"([^"]+)"`)

// Tools binds a Runner to the configured tool executables.
type Tools struct {
	Runner Runner
	Dotnet string
	ILSpy  string
}

// NewTools returns Tools using runner; empty paths fall back to the PATH names.
func NewTools(runner Runner, dotnetPath, ilspyPath string) *Tools {
	if runner == nil {
		runner = ExecRunner{}
	}
	if dotnetPath == "" {
		dotnetPath = DefaultDotnet
	}
	if ilspyPath == "" {
		ilspyPath = DefaultILSpy
	}
	return &Tools{Runner: runner, Dotnet: dotnetPath, ILSpy: ilspyPath}
}

// Build runs "dotnet build <project> --configuration Release" in dir.
func (t *Tools) Build(ctx context.Context, dir, projectFile string) error {
	return t.Runner.Run(ctx, dir, t.Dotnet, "build", projectFile, "--configuration", BuildConfiguration)
}

// Decompile writes a decompiled project of assembly into outputDir, running
// the decompiler in dir.
func (t *Tools) Decompile(ctx context.Context, dir, assembly, outputDir string) error {
	return t.Runner.Run(ctx, dir, t.ILSpy, assembly, "-p", "-o", outputDir)
}

// FindVersionSource locates VersionSourceFile under root: directly in root
// first, else the first match in lexical walk order.
func FindVersionSource(root string) (string, error) {
	direct := filepath.Join(root, VersionSourceFile)
	if info, err := os.Stat(direct); err == nil && !info.IsDir() {
		return direct, nil
	}

	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == VersionSourceFile {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to search %s: %w", root, err)
	}
	if found == "" {
		return "", fmt.Errorf("could not locate %s in decompiled output %s", VersionSourceFile, root)
	}
	return found, nil
}

// ExtractVersion returns the first VERSION = "..." constant in source.
func ExtractVersion(source string) (string, bool) {
	m := versionPattern.FindStringSubmatch(source)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ReadVersion finds the version source under root and extracts the version.
func ReadVersion(root string) (string, error) {
	path, err := FindVersionSource(root)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	version, ok := ExtractVersion(string(data))
	if !ok {
		return "", fmt.Errorf("could not determine game version from %s", path)
	}
	debug.DebugValue("[toolchain] Game version", version)
	return version, nil
}
