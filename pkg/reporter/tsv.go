package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/pepdigest/pkg/runner"
)

// tsvHeader names the tsv columns. Positions are 1-based and inclusive.
const tsvHeader = "id\tstart\tend\tlength\tmiscleavages\tsequence\n"

// TSVReporter formats results as tab-separated rows, one per peptide.
type TSVReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewTSVReporter creates a new tsv reporter.
func NewTSVReporter(opts Options) *TSVReporter {
	return &TSVReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TSVReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if r.opts.ShowHeader {
		r.bw.WriteString(tsvHeader)
	}

	if result == nil {
		return 0, nil
	}

	var total int
	row := make([]byte, 0, 128)
	for _, outcome := range result.Records {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if outcome.Error != nil {
			continue
		}

		for _, peptide := range outcome.Peptides {
			row = row[:0]
			row = append(row, outcome.Record.ID...)
			row = append(row, '\t')
			row = strconv.AppendInt(row, int64(peptide.Start+1), 10)
			row = append(row, '\t')
			row = strconv.AppendInt(row, int64(peptide.End+1), 10)
			row = append(row, '\t')
			row = strconv.AppendInt(row, int64(peptide.Len()), 10)
			row = append(row, '\t')
			row = strconv.AppendInt(row, int64(missedCleavages(outcome.Record.Sequence, peptide, result.Options)), 10)
			row = append(row, '\t')
			row = append(row, peptide.Sequence...)
			row = append(row, '\n')
			r.bw.Write(row)
			total++
		}
	}

	if err := r.bw.Flush(); err != nil {
		return total, fmt.Errorf("flush output: %w", err)
	}

	if err := reportFailures(r.opts.ErrorWriter, result, func(o runner.Outcome) string {
		return fmt.Sprintf("%s: error: %v\n", o.Record.ID, o.Error)
	}); err != nil {
		return total, err
	}

	return total, nil
}
