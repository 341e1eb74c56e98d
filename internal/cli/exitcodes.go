package cli

import (
	"context"
	"errors"

	"github.com/yaklabco/pepdigest/pkg/runner"
)

// Exit codes for pepdigest.
const (
	// ExitSuccess indicates every sequence was digested.
	ExitSuccess = 0

	// ExitDigestFailures indicates the run completed but some sequences failed.
	ExitDigestFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates invalid configuration or malformed input records.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitInterrupted indicates the run was cancelled by a signal.
	ExitInterrupted = 130
)

// ErrDigestFailures is returned when some sequences could not be digested.
var ErrDigestFailures = errors.New("some sequences failed to digest")

// ExitError carries the exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// withExitCode tags err with code. A nil err stays nil.
func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

func usageError(err error) error  { return withExitCode(ExitInvalidUsage, err) }
func configError(err error) error { return withExitCode(ExitConfigError, err) }
func ioError(err error) error     { return withExitCode(ExitIOError, err) }

// ExitCodeFromResult determines the exit code for a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitDigestFailures
	}
	return ExitSuccess
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrDigestFailures) {
		return ExitDigestFailures
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitInternalError
}
