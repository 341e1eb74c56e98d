package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/pepdigest/pkg/runner"
)

// Table formatting constants.
const (
	barSymbol         = "#"
	tablePadding      = 2
	recordColumnCount = 4 // ID, RESIDUES, PEPTIDES, STATUS
	lengthColumnCount = 3 // LENGTH, COUNT, DISTRIBUTION
	minIDWidth        = 12
	numColumnWidth    = 8
	minStatusWidth    = 6
	minBarWidth       = 10
	maxBarWidth       = 50
	heavySeparator    = "="
	lightSeparator    = "-"
	defaultTermWidth  = 100
	statusOK          = "ok"
	statusEmpty       = "empty"
	statusFailed      = "failed"
)

// RecordRow represents a single row in the record table.
type RecordRow struct {
	ID       string
	Residues int
	Peptides int
	Failed   bool
}

// Status returns the row's status label.
func (r RecordRow) Status() string {
	switch {
	case r.Failed:
		return statusFailed
	case r.Peptides == 0:
		return statusEmpty
	default:
		return statusOK
	}
}

// TableFormatter formats run results as styled tables.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// RecordRows converts runner outcomes to table rows.
func RecordRows(result *runner.Result) []RecordRow {
	if result == nil {
		return nil
	}

	rows := make([]RecordRow, 0, len(result.Records))
	for _, outcome := range result.Records {
		rows = append(rows, RecordRow{
			ID:       outcome.Record.ID,
			Residues: len(outcome.Record.Sequence),
			Peptides: len(outcome.Peptides),
			Failed:   outcome.Error != nil,
		})
	}
	return rows
}

// FormatRecordTable formats one row per record.
func (t *TableFormatter) FormatRecordTable(rows []RecordRow) string {
	if len(rows) == 0 {
		return ""
	}

	idWidth := t.idColumnWidth(rows)
	totalWidth := idWidth + numColumnWidth*2 + minStatusWidth + tablePadding*recordColumnCount

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %*s  %*s  %-*s ",
		idWidth, "ID",
		numColumnWidth, "RESIDUES",
		numColumnWidth, "PEPTIDES",
		minStatusWidth, "STATUS",
	)
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.separator(totalWidth, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(fmt.Sprintf(" %-*s  %*d  %*d  %s\n",
			idWidth, truncateID(row.ID, idWidth),
			numColumnWidth, row.Residues,
			numColumnWidth, row.Peptides,
			t.formatStatus(row.Status()),
		))
	}

	builder.WriteString(t.separator(totalWidth, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

// FormatLengthTable formats the peptide length distribution with proportional bars.
func (t *TableFormatter) FormatLengthTable(byLength map[int]int) string {
	lengths := make([]int, 0, len(byLength))
	peak := 0
	for length, count := range byLength {
		if count == 0 {
			continue
		}
		lengths = append(lengths, length)
		peak = max(peak, count)
	}
	if len(lengths) == 0 {
		return ""
	}
	slices.Sort(lengths)

	barWidth := t.termWidth - numColumnWidth*2 - tablePadding*lengthColumnCount
	barWidth = min(maxBarWidth, max(minBarWidth, barWidth))
	totalWidth := numColumnWidth*2 + barWidth + tablePadding*lengthColumnCount

	var builder strings.Builder

	header := fmt.Sprintf(" %*s  %*s  %-*s ",
		numColumnWidth, "LENGTH",
		numColumnWidth, "COUNT",
		barWidth, "DISTRIBUTION",
	)
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.separator(totalWidth, heavySeparator))
	builder.WriteString("\n")

	for _, length := range lengths {
		count := byLength[length]
		bar := strings.Repeat(barSymbol, scaleBar(count, peak, barWidth))
		builder.WriteString(fmt.Sprintf(" %*d  %*d  %s\n",
			numColumnWidth, length,
			numColumnWidth, count,
			t.styles.TableBar.Render(bar),
		))
	}

	builder.WriteString(t.separator(totalWidth, lightSeparator))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = %s", barSymbol, barUnit(peak, barWidth)),
	))
	builder.WriteString("\n")

	return builder.String()
}

// idColumnWidth sizes the ID column to the longest ID, constrained to the terminal.
func (t *TableFormatter) idColumnWidth(rows []RecordRow) int {
	width := minIDWidth
	for _, row := range rows {
		width = max(width, len(row.ID))
	}

	fixed := numColumnWidth*2 + minStatusWidth + tablePadding*recordColumnCount
	if width+fixed > t.termWidth {
		width = max(minIDWidth, t.termWidth-fixed)
	}
	return width
}

// formatStatus styles a status label.
func (t *TableFormatter) formatStatus(status string) string {
	padded := fmt.Sprintf("%-*s", minStatusWidth, status)
	switch status {
	case statusFailed:
		return t.styles.Error.Render(padded)
	case statusEmpty:
		return t.styles.Warning.Render(padded)
	default:
		return t.styles.Success.Render(padded)
	}
}

// separator formats a separator line.
func (t *TableFormatter) separator(width int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, width))
}

// scaleBar returns the bar length for count relative to peak.
// Non-zero counts always get at least one symbol.
func scaleBar(count, peak, width int) int {
	if count <= 0 || peak <= 0 {
		return 0
	}
	if peak <= width {
		return count
	}
	return max(1, count*width/peak)
}

// barUnit describes how many peptides one bar symbol stands for.
func barUnit(peak, width int) string {
	if peak <= width {
		return "1 peptide"
	}
	return "~" + strconv.Itoa((peak+width-1)/width) + " peptides"
}

// truncateID truncates an ID to maxLen, keeping the start and marking the cut with "...".
func truncateID(id string, maxLen int) string {
	if len(id) <= maxLen {
		return id
	}
	if maxLen <= 3 {
		return id[:maxLen]
	}
	return id[:maxLen-3] + "..."
}
