package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/pepdigest/internal/ui/pretty"
	"github.com/yaklabco/pepdigest/pkg/runner"
)

// SummaryReporter formats results as aggregate tables without listing peptides.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	table  *pretty.TableFormatter
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &SummaryReporter{
		opts:   opts,
		styles: styles,
		table:  pretty.NewTableFormatter(styles, terminalWidth(opts)),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if result == nil || len(result.Records) == 0 {
		if _, err := fmt.Fprint(r.out, r.styles.FormatSummaryOneLine(runner.Stats{})); err != nil {
			return 0, fmt.Errorf("write summary: %w", err)
		}
		return 0, nil
	}

	sections := []string{
		r.styles.Bold.Render("Sequences") + "\n" + r.table.FormatRecordTable(pretty.RecordRows(result)),
	}
	if lengths := r.table.FormatLengthTable(result.Stats.ByLength); lengths != "" {
		sections = append(sections, r.styles.Bold.Render("Peptide Lengths")+"\n"+lengths)
	}

	// FormatSummary opens with its own blank line.
	out := strings.Join(sections, "\n") + r.styles.FormatSummary(result.Stats)
	if _, err := io.WriteString(r.out, out); err != nil {
		return 0, fmt.Errorf("write summary: %w", err)
	}

	return result.Stats.Peptides, nil
}

// terminalWidth returns the configured width, or the width of a terminal Writer.
func terminalWidth(opts Options) int {
	if opts.TermWidth > 0 {
		return opts.TermWidth
	}
	if f, ok := opts.Writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			return width
		}
	}
	return 0
}
