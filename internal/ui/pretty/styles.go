// Package pretty renders pepdigest terminal output with lipgloss.
package pretty

import (
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ANSI 256 palette indices.
const (
	paletteRed    = lipgloss.Color("9")
	paletteGreen  = lipgloss.Color("10")
	paletteYellow = lipgloss.Color("11")
	paletteBlue   = lipgloss.Color("12")
	paletteCyan   = lipgloss.Color("14")
	paletteGrey   = lipgloss.Color("8")
	paletteLight  = lipgloss.Color("7")
)

// Styles holds the renderers for every piece of styled output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Per-record output.
	RecordID lipgloss.Style
	Location lipgloss.Style
	Peptide  lipgloss.Style
	Source   lipgloss.Style

	// Summary block.
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Record and length tables.
	TableHeader    lipgloss.Style
	TableBar       lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns coloured styles, or pass-through styles when colour is off.
func NewStyles(colorEnabled bool) *Styles {
	if colorEnabled {
		return colorStyles()
	}
	return plainStyles()
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func colorStyles() *Styles {
	bold := lipgloss.NewStyle().Bold(true)
	return &Styles{
		Error:   fg(paletteRed).Bold(true),
		Warning: fg(paletteYellow).Bold(true),
		Info:    fg(paletteBlue).Bold(true),

		RecordID: bold,
		Location: fg(paletteGrey),
		Peptide:  fg(paletteCyan),
		Source:   fg(paletteGrey).Italic(true),

		SummaryTitle: bold,
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg(paletteGreen).Bold(true),
		Failure:      fg(paletteRed).Bold(true),

		TableHeader:    fg(paletteLight).Bold(true),
		TableBar:       fg(paletteBlue),
		TableLegend:    fg(paletteGrey).Italic(true),
		TableSeparator: fg(paletteGrey),

		Dim:  fg(paletteGrey),
		Bold: bold,
	}
}

func plainStyles() *Styles {
	p := lipgloss.NewStyle()
	return &Styles{
		Error: p, Warning: p, Info: p,
		RecordID: p, Location: p, Peptide: p, Source: p,
		SummaryTitle: p, SummaryValue: p, Success: p, Failure: p,
		TableHeader: p, TableBar: p, TableLegend: p, TableSeparator: p,
		Dim: p, Bold: p,
	}
}

// ValidColorMode reports whether mode is auto, always, never, or empty.
func ValidColorMode(mode string) bool {
	return mode == "" || slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, mode)
}

// IsColorEnabled decides whether output to writer is coloured.
// In auto mode colour needs a terminal writer and an unset NO_COLOR
// (https://no-color.org/). Unknown modes behave like auto.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
