// Package errors provides sentinel errors and custom error types for gitexec.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrExecution indicates that a git invocation exited with a status that
	// the exit policy does not tolerate
	ErrExecution = errors.New("git execution failed")

	// ErrGitNotFound indicates that the git binary could not be started
	ErrGitNotFound = errors.New("git not found")

	// ErrNotARepository indicates that no repository could be located
	ErrNotARepository = errors.New("not a git repository")

	// ErrUnsupportedVersion indicates that the installed git is older than required
	ErrUnsupportedVersion = errors.New("unsupported git version")
)

// ExecutionError represents a failed git invocation. It always carries the
// full command line so the failure can be reproduced by hand.
type ExecutionError struct {
	CommandLine string
	Output      string
	ExitCode    int
	Err         error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.CommandLine)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	}
	if e.Output != "" {
		msg += fmt.Sprintf("\noutput: %s", e.Output)
	}
	return msg
}

// Is returns true if the target error is ErrExecution
func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecution
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewExecutionError creates a new ExecutionError
func NewExecutionError(commandLine, output string, exitCode int, err error) *ExecutionError {
	return &ExecutionError{
		CommandLine: commandLine,
		Output:      output,
		ExitCode:    exitCode,
		Err:         err,
	}
}

// GitNotFoundError represents a git binary that could not be executed
type GitNotFoundError struct {
	Binary string
	Err    error
}

func (e *GitNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: ensure git is installed and in PATH", e.Binary)
}

// Is returns true if the target error is ErrGitNotFound
func (e *GitNotFoundError) Is(target error) bool {
	return target == ErrGitNotFound
}

func (e *GitNotFoundError) Unwrap() error {
	return e.Err
}

// NewGitNotFoundError creates a new GitNotFoundError
func NewGitNotFoundError(binary string, err error) *GitNotFoundError {
	return &GitNotFoundError{Binary: binary, Err: err}
}

// UnsupportedVersionError reports an installed git older than the minimum
type UnsupportedVersionError struct {
	Installed string
	Required  string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("git %s is older than the required %s", e.Installed, e.Required)
}

// Is returns true if the target error is ErrUnsupportedVersion
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// NewUnsupportedVersionError creates a new UnsupportedVersionError
func NewUnsupportedVersionError(installed, required string) *UnsupportedVersionError {
	return &UnsupportedVersionError{Installed: installed, Required: required}
}
