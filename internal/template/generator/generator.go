package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/template/placeholder"
)

// Generator renders a template tree into a destination directory.
type Generator interface {
	// Generate renders the template into the output directory.
	// Existing files are overwritten. Files processed before a failure stay
	// on disk; the failing file is never written.
	Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)

	// DryRun walks and validates the template without writing anything.
	DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures a render.
type GenerateOptions struct {
	// Template is the template tree. Use os.DirFS for on-disk templates.
	Template fs.FS

	// Values is the substitution mapping.
	Values placeholder.Values

	// OutputDir is the directory where files will be generated.
	OutputDir string

	// PathPatterns maps template segment names to placeholder patterns.
	// Nil uses DefaultPathPatterns.
	PathPatterns PathPatternTable
}

// GenerateResult contains generation statistics.
type GenerateResult struct {
	// FilesCreated is the number of new files created.
	FilesCreated int

	// FilesOverwritten is the number of existing files overwritten.
	FilesOverwritten int

	// BinaryFiles is the number of files copied verbatim.
	BinaryFiles int

	// Files are the rendered output paths, relative to OutputDir, in walk order.
	Files []string

	// Directories are the rendered directories, relative to OutputDir, sorted.
	Directories []string
}

// DefaultGenerator implements Generator.
type DefaultGenerator struct {
	processor Processor
	writer    Writer
}

// NewGenerator creates a new DefaultGenerator.
func NewGenerator() Generator {
	return &DefaultGenerator{
		processor: NewFileProcessor(),
		writer:    NewFileWriter(),
	}
}

// Generate renders the template into the output directory.
func (g *DefaultGenerator) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, opts, false)
}

// DryRun validates the template without writing files.
func (g *DefaultGenerator) DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, opts, true)
}

func (g *DefaultGenerator) generate(ctx context.Context, opts GenerateOptions, dryRun bool) (*GenerateResult, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	table := opts.PathPatterns
	if table == nil {
		table = DefaultPathPatterns()
	}

	debug.Debug("[generator] Starting generation: outputDir=%s, dryRun=%v, values=%d",
		opts.OutputDir, dryRun, len(opts.Values))

	result := &GenerateResult{
		Files:       []string{},
		Directories: []string{},
	}

	err := fs.WalkDir(opts.Template, ".", func(rel string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		renderedRel, err := RenderRelativePath(rel, opts.Values, table)
		if err != nil {
			return err
		}
		outputPath := filepath.Join(opts.OutputDir, filepath.FromSlash(renderedRel))

		if d.IsDir() {
			result.Directories = append(result.Directories, renderedRel)
			if dryRun {
				return nil
			}
			return g.writer.CreateDir(outputPath)
		}

		return g.renderFile(opts, d, rel, renderedRel, outputPath, dryRun, result)
	})
	if err != nil {
		return result, err
	}

	sort.Strings(result.Directories)

	debug.Debug("[generator] Generation complete: created=%d, overwritten=%d, binary=%d",
		result.FilesCreated, result.FilesOverwritten, result.BinaryFiles)

	return result, nil
}

// renderFile processes one template file.
func (g *DefaultGenerator) renderFile(opts GenerateOptions, d fs.DirEntry, rel, renderedRel, outputPath string, dryRun bool, result *GenerateResult) error {
	info, err := d.Info()
	if err != nil {
		return newGeneratorError(GeneratorProcessFailed, "failed to stat template file", rel, err)
	}

	content, err := fs.ReadFile(opts.Template, rel)
	if err != nil {
		return newGeneratorError(GeneratorProcessFailed, "failed to read template file", rel, err)
	}

	binary := !g.processor.ShouldProcess(content)
	if !binary {
		if missing := g.processor.Validate(content, opts.Values); len(missing) > 0 {
			return &MissingPlaceholderError{File: rel, Keys: missing}
		}
	}

	exists := g.writer.Exists(outputPath)
	result.Files = append(result.Files, renderedRel)
	if exists {
		result.FilesOverwritten++
	} else {
		result.FilesCreated++
	}
	if binary {
		result.BinaryFiles++
	}

	if dryRun {
		debug.Debug("[generator] Dry run: would write %s", outputPath)
		return nil
	}

	if binary {
		debug.Debug("[generator] Copying binary file: %s -> %s (size: %d bytes)", rel, outputPath, len(content))
		if err := g.writer.WriteFile(outputPath, content, info.Mode()); err != nil {
			return err
		}
		return g.writer.CopyMetadata(outputPath, info)
	}

	debug.Debug("[generator] Rendering text file: %s -> %s", rel, outputPath)
	return g.writer.WriteFile(outputPath, g.processor.Render(content, opts.Values), info.Mode())
}

// RenderDir renders the on-disk template at templateRoot into destinationRoot.
// The template root must exist and be a directory; the destination, when it
// exists, must be a directory.
func RenderDir(ctx context.Context, templateRoot, destinationRoot string, values placeholder.Values) (*GenerateResult, error) {
	opts, err := dirOptions(templateRoot, destinationRoot, values)
	if err != nil {
		return nil, err
	}
	return NewGenerator().Generate(ctx, opts)
}

// PreviewDir runs the checks and walk of RenderDir without writing anything.
func PreviewDir(ctx context.Context, templateRoot, destinationRoot string, values placeholder.Values) (*GenerateResult, error) {
	opts, err := dirOptions(templateRoot, destinationRoot, values)
	if err != nil {
		return nil, err
	}
	return NewGenerator().DryRun(ctx, opts)
}

func dirOptions(templateRoot, destinationRoot string, values placeholder.Values) (GenerateOptions, error) {
	if err := checkDir(templateRoot, "template directory"); err != nil {
		return GenerateOptions{}, err
	}
	if info, err := os.Stat(destinationRoot); err == nil && !info.IsDir() {
		return GenerateOptions{}, newGeneratorError(GeneratorNotADirectory,
			"destination exists and is not a directory", destinationRoot, nil)
	}
	return GenerateOptions{
		Template:  os.DirFS(templateRoot),
		Values:    values,
		OutputDir: destinationRoot,
	}, nil
}

func checkDir(path, description string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newGeneratorError(GeneratorPathNotFound,
				fmt.Sprintf("%s not found", description), path, err)
		}
		return newGeneratorError(GeneratorPathError,
			fmt.Sprintf("failed to access %s", description), path, err)
	}
	if !info.IsDir() {
		return newGeneratorError(GeneratorNotADirectory,
			fmt.Sprintf("%s is not a directory", description), path, nil)
	}
	return nil
}

// validateOptions validates GenerateOptions.
func validateOptions(opts GenerateOptions) error {
	if opts.Template == nil {
		return fmt.Errorf("template cannot be nil")
	}

	if opts.Values == nil {
		return fmt.Errorf("values cannot be nil")
	}

	if opts.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}

	return nil
}
