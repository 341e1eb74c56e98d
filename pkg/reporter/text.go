package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/pepdigest/internal/ui/pretty"
	"github.com/yaklabco/pepdigest/pkg/runner"
)

// TextReporter formats results as one peptide per line.
type TextReporter struct {
	opts      Options
	styles    *pretty.Styles
	errStyles *pretty.Styles
	bw        *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:      opts,
		styles:    pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		errStyles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Records) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprint(r.opts.ErrorWriter, r.errStyles.FormatSummaryOneLine(runner.Stats{}))
		}
		return 0, nil
	}

	var total int
	if r.opts.GroupByRecord {
		total, err = r.reportGrouped(ctx, result)
	} else {
		total, err = r.reportFlat(ctx, result)
	}
	if err != nil {
		return total, err
	}

	if err := r.bw.Flush(); err != nil {
		return total, fmt.Errorf("flush output: %w", err)
	}

	if err := reportFailures(r.opts.ErrorWriter, result, func(o runner.Outcome) string {
		return r.errStyles.FormatRecordError(o.Record.ID, o.Error)
	}); err != nil {
		return total, err
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.opts.ErrorWriter, r.errStyles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportGrouped writes peptides under a header per record.
func (r *TextReporter) reportGrouped(ctx context.Context, result *runner.Result) (int, error) {
	var total int

	for _, outcome := range result.Records {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if outcome.Error != nil {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatRecordHeader(
			outcome.Record.ID, len(outcome.Record.Sequence), len(outcome.Peptides)))

		for _, peptide := range outcome.Peptides {
			fmt.Fprint(r.bw, r.styles.FormatPeptide(peptide, r.opts.ShowPositions))
			total++
		}

		// Blank line between records
		fmt.Fprintln(r.bw)
	}

	return total, nil
}

// reportFlat writes bare peptides, one per line.
func (r *TextReporter) reportFlat(ctx context.Context, result *runner.Result) (int, error) {
	var total int

	for _, outcome := range result.Records {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if outcome.Error != nil {
			continue
		}

		for _, peptide := range outcome.Peptides {
			if r.opts.ShowPositions {
				fmt.Fprintf(r.bw, "%d-%d\t%s\n", peptide.Start+1, peptide.End+1, peptide.Sequence)
			} else {
				r.bw.WriteString(peptide.Sequence)
				r.bw.WriteByte('\n')
			}
			total++
		}
	}

	return total, nil
}
