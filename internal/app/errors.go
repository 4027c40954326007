package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ValidationFailed indicates invalid user input or destination state.
	ValidationFailed AppErrorType = iota
	// PathsMissing indicates the game directories could not be discovered.
	PathsMissing
	// ScaffoldFailed indicates template rendering or project setup failed.
	ScaffoldFailed
	// DeployFailed indicates building, staging or installing failed.
	DeployFailed
	// ArtifactMissing indicates a file a step depends on does not exist.
	ArtifactMissing
	// DecompileFailed indicates decompilation or version detection failed.
	DecompileFailed
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewScaffoldError creates a scaffold error.
func NewScaffoldError(message string, cause error) *AppError {
	return NewAppError(ScaffoldFailed, message, cause)
}

// NewDeployError creates a deploy error.
func NewDeployError(message string, cause error) *AppError {
	return NewAppError(DeployFailed, message, cause)
}

// NewArtifactMissingError creates an error for a missing required file.
func NewArtifactMissingError(what, path string) *AppError {
	return NewAppError(ArtifactMissing, fmt.Sprintf("%s not found at %s", what, path), nil)
}

// NewDecompileError creates a decompile error.
func NewDecompileError(message string, cause error) *AppError {
	return NewAppError(DecompileFailed, message, cause)
}
