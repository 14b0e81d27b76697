// Package testutil provides testing utilities for run-matrix.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockCommandFailed simulates a shell command exiting non-zero.
	ErrMockCommandFailed = errors.New("command failed")

	// ErrMockCommandStart simulates a command that could not be started
	// (missing shell, permission denied).
	ErrMockCommandStart = errors.New("command could not be started")

	// ErrMockWriteFailed simulates a failing output writer.
	ErrMockWriteFailed = errors.New("write failed")
)

// FailingWriter is an io.Writer whose Write always fails with
// ErrMockWriteFailed. Use it to exercise render error paths.
type FailingWriter struct{}

// Write implements io.Writer and always fails.
func (FailingWriter) Write(_ []byte) (int, error) {
	return 0, ErrMockWriteFailed
}
