package generator

import (
	"bytes"

	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/template/placeholder"
)

// BinarySampleSize is the number of leading bytes inspected for a null byte.
const BinarySampleSize = 1024

// Processor classifies and renders individual file contents.
// Validation and rendering are separate pure steps: Validate reports every
// missing key, and Render assumes validation passed.
type Processor interface {
	// ShouldProcess reports whether content is text to be rendered.
	// Binary content is copied verbatim.
	ShouldProcess(content []byte) bool

	// Validate returns the sorted required placeholder keys missing from values.
	Validate(content []byte, values placeholder.Values) []string

	// Render substitutes known placeholders. It never fails.
	Render(content []byte, values placeholder.Values) []byte
}

// FileProcessor implements Processor.
type FileProcessor struct {
	sampleSize int
}

// NewFileProcessor creates a new FileProcessor.
func NewFileProcessor() Processor {
	return &FileProcessor{sampleSize: BinarySampleSize}
}

// ShouldProcess returns false when content looks binary.
func (p *FileProcessor) ShouldProcess(content []byte) bool {
	return !isBinaryContent(content, p.sampleSize)
}

// isBinaryContent checks for a null byte in the first n bytes.
func isBinaryContent(content []byte, n int) bool {
	if len(content) > n {
		content = content[:n]
	}
	return bytes.IndexByte(content, 0) != -1
}

// Validate returns missing required keys.
func (p *FileProcessor) Validate(content []byte, values placeholder.Values) []string {
	return placeholder.Missing(string(content), values)
}

// Render performs safe substitution.
func (p *FileProcessor) Render(content []byte, values placeholder.Values) []byte {
	out := placeholder.SafeSubstitute(string(content), values)
	debug.Debug("[generator] Rendered content (input: %d bytes, output: %d bytes)", len(content), len(out))
	return []byte(out)
}
