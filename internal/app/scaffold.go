package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hosmod/hosmod/internal/config"
	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/fsutil"
	"github.com/hosmod/hosmod/internal/template/generator"
	"github.com/hosmod/hosmod/internal/template/placeholder"
	"github.com/hosmod/hosmod/internal/template/scaffolds"
)

// ScaffoldOptions configures Scaffold.
type ScaffoldOptions struct {
	// Destination is the new project directory.
	Destination string
	// Mod describes the new mod.
	Mod ModInfo
	// Force allows scaffolding into a non-empty directory.
	Force bool
	// TemplateDir renders an on-disk template instead of the embedded one.
	TemplateDir string
	// EnvFile is copied into the project when it exists and the project has none.
	EnvFile string
	// SkipDLLs skips the initial GetDLLs run.
	SkipDLLs bool
	// DryRun validates the template and reports the files it would produce
	// without touching the destination.
	DryRun bool
	// Paths override directory discovery.
	Paths PathOverrides
	// NewGUID generates project and solution GUIDs. Nil uses NewGUID.
	NewGUID GUIDFunc
}

// ScaffoldResult describes a created project.
type ScaffoldResult struct {
	Path        string
	Values      placeholder.Values
	Generated   *generator.GenerateResult
	ProjectFile string
	DLLs        *GetDLLsResult // nil when skipped
	DryRun      bool
}

// Scaffold creates a new mod project from the template.
func (s *Services) Scaffold(ctx context.Context, opts ScaffoldOptions) (*ScaffoldResult, error) {
	debug.DebugSection("[app] Scaffold workflow start")
	debug.DebugValue("[app] Destination", opts.Destination)
	debug.DebugValue("[app] Template", opts.TemplateDir)
	debug.DebugValue("[app] Force", opts.Force)
	debug.DebugValue("[app] DryRun", opts.DryRun)

	if opts.Mod.Name == "" {
		return nil, NewValidationError("mod name is required", nil)
	}
	if opts.Mod.Author == "" {
		return nil, NewValidationError("mod author is required", nil)
	}

	if err := s.ValidatePaths(opts.Paths); err != nil {
		return nil, err
	}

	dest, err := filepath.Abs(opts.Destination)
	if err != nil {
		return nil, NewValidationError("failed to resolve destination path", err)
	}
	if err := ensureDestination(dest, opts.Force, opts.DryRun); err != nil {
		return nil, err
	}

	values := BuildValues(opts.Mod, opts.NewGUID)

	generated, err := render(ctx, opts.TemplateDir, dest, values, opts.DryRun)
	if err != nil {
		return nil, NewScaffoldError("failed to render template", err)
	}

	if opts.DryRun {
		return &ScaffoldResult{
			Path:        dest,
			Values:      values,
			Generated:   generated,
			ProjectFile: filepath.Join(dest, ProjectFileName),
			DryRun:      true,
		}, nil
	}

	projectFile, err := WriteProject(dest, SettingsFromValues(values))
	if err != nil {
		return nil, err
	}

	if err := copyEnvFile(opts.EnvFile, dest); err != nil {
		return nil, NewScaffoldError("failed to copy .env", err)
	}

	if err := os.MkdirAll(filepath.Join(dest, AssetsDirName), 0755); err != nil {
		return nil, NewScaffoldError("failed to create assets directory", err)
	}

	result := &ScaffoldResult{Path: dest, Values: values, Generated: generated, ProjectFile: projectFile}

	if !opts.SkipDLLs {
		dlls, err := s.GetDLLs(ctx, GetDLLsOptions{ProjectDir: dest, Paths: opts.Paths})
		if err != nil {
			return nil, err
		}
		result.DLLs = dlls
	}

	return result, nil
}

// render renders the on-disk template at templateDir, or the embedded one
// when templateDir is empty.
func render(ctx context.Context, templateDir, dest string, values placeholder.Values, dryRun bool) (*generator.GenerateResult, error) {
	switch {
	case templateDir != "" && dryRun:
		return generator.PreviewDir(ctx, templateDir, dest, values)
	case templateDir != "":
		return generator.RenderDir(ctx, templateDir, dest, values)
	}

	opts := generator.GenerateOptions{
		Template:     scaffolds.Default(),
		Values:       values,
		OutputDir:    dest,
		PathPatterns: generator.DefaultPathPatterns(),
	}
	if dryRun {
		return generator.NewGenerator().DryRun(ctx, opts)
	}
	return generator.NewGenerator().Generate(ctx, opts)
}

// ensureDestination accepts a missing or empty directory, or any directory
// when force is set, and creates it unless dryRun is set.
func ensureDestination(dest string, force, dryRun bool) error {
	info, err := os.Stat(dest)
	if err == nil {
		if !info.IsDir() {
			return NewValidationError(fmt.Sprintf("destination %s exists and is not a directory", dest), nil)
		}
		if !force {
			entries, err := os.ReadDir(dest)
			if err != nil {
				return NewValidationError("failed to read destination directory", err)
			}
			if len(entries) > 0 {
				return NewValidationError(
					fmt.Sprintf("destination %s is not empty. Use --force to scaffold anyway", dest), nil)
			}
		}
		return nil
	}
	if dryRun {
		return nil
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return NewValidationError("failed to create destination directory", err)
	}
	return nil
}

func copyEnvFile(src, dest string) error {
	if src == "" || !fsutil.Exists(src) {
		return nil
	}
	target := filepath.Join(dest, config.EnvFileName)
	if fsutil.Exists(target) {
		return nil
	}
	debug.Debug("[app] Copying %s -> %s", src, target)
	return fsutil.CopyFile(src, target)
}
