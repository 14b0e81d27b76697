// Package errors provides centralized error handling for run-matrix.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrConfigInvalid indicates that the matrix configuration is malformed
	// or contradictory. Surfaced before any execution, exit code 2.
	ErrConfigInvalid = errors.New("invalid matrix configuration")

	// ErrConfigNotFound indicates that the matrix file was not found.
	ErrConfigNotFound = errors.New("matrix file not found")

	// ErrNoEnvironments indicates the matrix declares no environments.
	ErrNoEnvironments = errors.New("no environments declared")

	// ErrDuplicateEnvironment indicates two environment descriptors share a name.
	ErrDuplicateEnvironment = errors.New("duplicate environment name")

	// ErrMissingCommand indicates a descriptor lacks an install or test command.
	ErrMissingCommand = errors.New("missing required command")

	// ErrUnknownEnvironment indicates an --env selection named an environment
	// that does not exist in the matrix.
	ErrUnknownEnvironment = errors.New("unknown environment")

	// ErrMatrixFailed indicates at least one environment pipeline did not
	// reach a succeeded test verdict. The per-environment detail lives in
	// the run report, not in this error.
	ErrMatrixFailed = errors.New("matrix run failed")

	// ErrCommandFailed indicates a command execution failed.
	ErrCommandFailed = errors.New("command failed")

	// ErrCommandTimeout indicates a command exceeded its timeout duration.
	ErrCommandTimeout = errors.New("command timeout exceeded")

	// ErrInvalidTransition indicates an attempt to make an invalid pipeline
	// state transition.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrFileExists indicates an attempt to overwrite an existing file.
	ErrFileExists = errors.New("file already exists")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
// Exit code 2 is reserved for configuration load failures.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
