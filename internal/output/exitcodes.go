package output

import (
	"errors"

	gitexecerrors "gitexec.dev/gitexec/internal/errors"
)

// Exit codes:
// 0 = success
// 1 = user error (bad arguments, unknown command)
// 2 = git ran and failed
// 3 = environment error (no git, no repository, git too old)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitGitError    = 2
	ExitEnvironment = 3
)

// ExitError carries an exit code to main
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for bad input (exit code 1)
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// GetExitCode extracts the exit code from an error. Errors from the git
// layer map by kind; anything else is a user error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, gitexecerrors.ErrGitNotFound),
		errors.Is(err, gitexecerrors.ErrNotARepository),
		errors.Is(err, gitexecerrors.ErrUnsupportedVersion):
		return ExitEnvironment
	case errors.Is(err, gitexecerrors.ErrExecution):
		return ExitGitError
	}
	return ExitUserError
}
