// Package reporter writes digestion results in text, tsv, json and summary formats.
package reporter

import (
	"cmp"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/pepdigest/pkg/digest"
	"github.com/yaklabco/pepdigest/pkg/runner"
)

// Reporter formats and writes digestion results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of peptides reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the Reporter for opts.Format. Nil writers fall back to
// stdout and stderr.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	switch cmp.Or(opts.Format, FormatText) {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTSV:
		return NewTSVReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// reportFailures writes one line per failed record to w.
func reportFailures(w io.Writer, result *runner.Result, format func(runner.Outcome) string) error {
	if result == nil {
		return nil
	}
	for _, outcome := range result.Records {
		if outcome.Error == nil {
			continue
		}
		if _, err := io.WriteString(w, format(outcome)); err != nil {
			return fmt.Errorf("write failure: %w", err)
		}
	}
	return nil
}

// missedCleavages counts the sites a peptide spans. Non-specific digestion has no sites.
func missedCleavages(seq string, peptide digest.Peptide, opts digest.Options) int {
	if opts.Mode == digest.ModeNone {
		return 0
	}
	return digest.MissedCleavages(seq, peptide, opts.Rules, opts.MethionineCleavage)
}
