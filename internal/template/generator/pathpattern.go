package generator

import (
	"fmt"
	"path"
	"strings"

	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/template/placeholder"
)

// PathPatternTable maps literal template path segments to placeholder
// patterns. It applies to individual segments, never to whole paths.
type PathPatternTable map[string]string

// DefaultPathPatterns returns the path patterns used by the mod template.
func DefaultPathPatterns() PathPatternTable {
	return PathPatternTable{
		"TemplateScript.cs":       "${mod_class_name}.cs",
		"template_project.csproj": "${project_filename}",
		"template_project.sln":    "${solution_filename}",
	}
}

// RenderRelativePath renders a slash-separated template-relative path.
// Segments found in table are replaced by their pattern substituted with
// values; a key missing from values is an error. Other segments pass through
// unchanged. "." (the template root) renders to ".".
func RenderRelativePath(rel string, values placeholder.Values, table PathPatternTable) (string, error) {
	if rel == "" || rel == "." {
		return ".", nil
	}

	segments := strings.Split(rel, "/")
	rendered := make([]string, 0, len(segments))

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		pattern, ok := table[segment]
		if !ok {
			rendered = append(rendered, segment)
			continue
		}

		out, err := placeholder.Substitute(pattern, values)
		if err != nil {
			return "", newGeneratorError(GeneratorPathError,
				fmt.Sprintf("failed to render path segment %q", segment), rel, err)
		}
		debug.Debug("[generator] Path segment rendered: %s -> %s", segment, out)

		if err := validateSegment(out, segment); err != nil {
			return "", newGeneratorError(GeneratorPathError, err.Error(), rel, nil)
		}
		rendered = append(rendered, out)
	}

	return path.Join(rendered...), nil
}

// validateSegment checks a single rendered segment.
func validateSegment(rendered, original string) error {
	if strings.Contains(rendered, "..") {
		return fmt.Errorf("rendered segment %q contains path traversal (original: %q)", rendered, original)
	}

	if strings.ContainsAny(rendered, `/\`) {
		return fmt.Errorf("rendered segment %q contains a path separator (original: %q)", rendered, original)
	}

	if strings.TrimSpace(rendered) == "" {
		return fmt.Errorf("segment %q rendered to an empty name", original)
	}

	return nil
}
