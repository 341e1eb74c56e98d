package pretty

import (
	"fmt"
	"strconv"

	"github.com/yaklabco/pepdigest/pkg/digest"
)

// FormatPeptide formats a single peptide for terminal output.
// With positions, the 1-based inclusive range precedes the residues.
func (s *Styles) FormatPeptide(peptide digest.Peptide, showPositions bool) string {
	if !showPositions {
		return "  " + s.Peptide.Render(peptide.Sequence) + "\n"
	}

	location := fmt.Sprintf("%d-%d", peptide.Start+1, peptide.End+1)
	return fmt.Sprintf("  %s  %s\n",
		s.Location.Render(fmt.Sprintf("%-11s", location)),
		s.Peptide.Render(peptide.Sequence),
	)
}

// FormatRecordHeader formats a record header for grouped output.
func (s *Styles) FormatRecordHeader(id string, residues, peptideCount int) string {
	header := s.RecordID.Render(id)
	header += s.Dim.Render(fmt.Sprintf(" (%d aa, %s)", residues, pluralize(peptideCount, "peptide", "peptides")))
	return header
}

// FormatRecordError formats a record that failed to digest.
func (s *Styles) FormatRecordError(id string, err error) string {
	return fmt.Sprintf("%s: %s\n",
		s.RecordID.Render(id),
		s.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// pluralize renders "1 peptide" or "3 peptides".
func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
