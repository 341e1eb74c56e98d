package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format names an output format.
type Format string

const (
	FormatText    Format = "text"    // one peptide per line
	FormatTSV     Format = "tsv"     // one row per peptide with record and position columns
	FormatJSON    Format = "json"    // one document for the whole run
	FormatSummary Format = "summary" // per-record counts only
)

//nolint:gochecknoglobals // Read-only lookup table.
var formats = []Format{FormatText, FormatTSV, FormatJSON, FormatSummary}

// ParseFormat maps a flag or config value to a Format. Empty means text.
// Names are case-sensitive.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	if f := Format(s); f.IsValid() {
		return f, nil
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", s, strings.Join(names, ", "))
}

func (f Format) String() string { return string(f) }

// IsValid reports whether f is one of the known formats.
func (f Format) IsValid() bool { return slices.Contains(formats, f) }
