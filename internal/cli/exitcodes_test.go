package cli_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/pepdigest/internal/cli"
	"github.com/yaklabco/pepdigest/pkg/runner"
)

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "digest failures", err: cli.ErrDigestFailures, want: cli.ExitDigestFailures},
		{
			name: "wrapped digest failures",
			err:  fmt.Errorf("run: %w", cli.ErrDigestFailures),
			want: cli.ExitDigestFailures,
		},
		{name: "cancelled", err: context.Canceled, want: cli.ExitInterrupted},
		{
			name: "usage",
			err:  &cli.ExitError{Code: cli.ExitInvalidUsage, Err: errors.New("bad flag")},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "wrapped exit error",
			err:  fmt.Errorf("outer: %w", &cli.ExitError{Code: cli.ExitIOError, Err: errors.New("disk")}),
			want: cli.ExitIOError,
		},
		{name: "unclassified", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err))
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("inner")
	err := &cli.ExitError{Code: cli.ExitConfigError, Err: inner}

	assert.Equal(t, "inner", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	ok := &runner.Result{Stats: runner.Stats{Sequences: 1, SequencesDigested: 1}}
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(ok))

	failed := &runner.Result{Stats: runner.Stats{Sequences: 2, SequencesDigested: 1, SequencesErrored: 1}}
	assert.Equal(t, cli.ExitDigestFailures, cli.ExitCodeFromResult(failed))
}
