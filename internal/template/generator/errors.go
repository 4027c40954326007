package generator

import (
	"fmt"
	"strings"
)

// GeneratorErrorType categorizes generator errors.
type GeneratorErrorType int

const (
	// GeneratorWriteFailed indicates a file write operation failed.
	GeneratorWriteFailed GeneratorErrorType = iota
	// GeneratorProcessFailed indicates template processing failed.
	GeneratorProcessFailed
	// GeneratorPathError indicates an invalid or unsafe path was encountered.
	GeneratorPathError
	// GeneratorPathNotFound indicates the template or destination root does not exist.
	GeneratorPathNotFound
	// GeneratorNotADirectory indicates a root exists but is not a directory.
	GeneratorNotADirectory
)

// GeneratorError represents generator-specific errors.
type GeneratorError struct {
	// Type categorizes the error.
	Type GeneratorErrorType
	// Message is the error message.
	Message string
	// File is the file path related to the error (if applicable).
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (file: %s): %v", e.Message, e.File, e.Cause)
		}
		return fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// newGeneratorError creates a new GeneratorError.
func newGeneratorError(typ GeneratorErrorType, message, file string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}

// MissingPlaceholderError is returned when a text file requires placeholders
// that have no value. The destination file is not written.
type MissingPlaceholderError struct {
	// File is the template-relative path of the offending file.
	File string
	// Keys are the missing placeholder names, sorted.
	Keys []string
}

// Error implements the error interface.
func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("missing placeholder(s) %s while processing %s",
		strings.Join(e.Keys, ", "), e.File)
}
