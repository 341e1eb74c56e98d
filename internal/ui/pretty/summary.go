package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/pepdigest/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordSequence        = "sequence"
	wordSequences       = "sequences"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "412 peptides (389 unique) from 3 sequences, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.Sequences == 0 {
		return s.Dim.Render("No sequences digested") + "\n"
	}

	var parts []string

	if stats.Peptides == 0 {
		parts = append(parts, s.Warning.Render("No peptides")+
			" from "+pluralize(stats.Sequences, wordSequence, wordSequences))
	} else {
		parts = append(parts, fmt.Sprintf("%s (%d unique) from %s",
			s.Success.Render(pluralize(stats.Peptides, "peptide", "peptides")),
			stats.UniquePeptides,
			pluralize(stats.Sequences, wordSequence, wordSequences),
		))
	}

	if stats.SequencesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.SequencesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Sequences
	builder.WriteString("  Sequences:         " +
		s.SummaryValue.Render(strconv.Itoa(stats.Sequences)) + "\n")

	if stats.SequencesErrored > 0 {
		builder.WriteString("  Failed:            " +
			s.Failure.Render(strconv.Itoa(stats.SequencesErrored)) + "\n")
	}

	if stats.SequencesWithoutPeptides > 0 {
		builder.WriteString("  Without peptides:  " +
			s.Warning.Render(strconv.Itoa(stats.SequencesWithoutPeptides)) + "\n")
	}

	builder.WriteString("  Residues:          " +
		s.SummaryValue.Render(strconv.Itoa(stats.Residues)) + "\n")

	builder.WriteString("\n")

	// Peptides
	builder.WriteString("  Peptides:          " +
		s.SummaryValue.Render(strconv.Itoa(stats.Peptides)) + "\n")
	builder.WriteString("    Unique:          " +
		s.SummaryValue.Render(strconv.Itoa(stats.UniquePeptides)) + "\n")

	if shortest, longest, ok := lengthRange(stats.ByLength); ok {
		builder.WriteString("    Lengths:         " +
			s.SummaryValue.Render(fmt.Sprintf("%d-%d", shortest, longest)) + "\n")
	}

	if stats.Elapsed > 0 {
		builder.WriteString("  Elapsed:           " +
			s.Dim.Render(stats.Elapsed.Round(time.Millisecond).String()) + "\n")
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.SequencesErrored > 0:
		builder.WriteString(s.Failure.Render("Digestion failed for some sequences"))
	case stats.Peptides == 0:
		builder.WriteString(s.Warning.Render("Digestion produced no peptides"))
	default:
		builder.WriteString(s.Success.Render("Digestion complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// lengthRange returns the shortest and longest peptide length with a non-zero count.
func lengthRange(byLength map[int]int) (int, int, bool) {
	shortest, longest := 0, 0
	found := false
	for length, count := range byLength {
		if count == 0 {
			continue
		}
		if !found || length < shortest {
			shortest = length
		}
		if !found || length > longest {
			longest = length
		}
		found = true
	}
	return shortest, longest, found
}
