// Package toolchain invokes the external .NET build tool and decompiler.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hosmod/hosmod/internal/debug"
)

// Runner runs an external command in dir. Implementations stream the
// command's output to the user.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ToolError reports an external tool that could not start or exited non-zero.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Cause    error
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	cmd := strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
	if e.ExitCode > 0 {
		return fmt.Sprintf("command failed with exit code %d: %s", e.ExitCode, cmd)
	}
	return fmt.Sprintf("command failed: %s: %v", cmd, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ToolError) Unwrap() error {
	return e.Cause
}

// ExecRunner runs commands with os/exec, attached to the process stdio.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	debug.Debug("[toolchain] Running %s %s (dir=%s)", name, strings.Join(args, " "), dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		toolErr := &ToolError{Tool: name, Args: args, Cause: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			toolErr.ExitCode = exitErr.ExitCode()
		}
		return toolErr
	}
	return nil
}
