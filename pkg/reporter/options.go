package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/pepdigest/internal/ui/pretty"
)

const bufWriterSize = 64 << 10

// Options configures a Reporter.
type Options struct {
	// Writer receives peptides. ErrorWriter receives failed records and,
	// for text output, the summary line, so Writer can be piped cleanly.
	Writer      io.Writer
	ErrorWriter io.Writer

	Format Format

	// Color is one of the pretty.Color* modes.
	Color string

	GroupByRecord bool // text: header line before each record
	ShowPositions bool // text: prefix peptides with their 1-based range
	ShowHeader    bool // tsv: column header row
	ShowSummary   bool
	Compact       bool // json: no indentation

	// TermWidth bounds summary tables. Zero detects the width of Writer.
	TermWidth int
}

// DefaultOptions writes text to stdout with headers and a summary.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       pretty.ColorAuto,
		ShowHeader:  true,
		ShowSummary: true,
	}
}
