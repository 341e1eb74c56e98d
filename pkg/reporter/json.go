package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/yaklabco/pepdigest/pkg/runner"
)

// jsonSchemaVersion versions the JSON document layout.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string       `json:"version"`
	Options JSONOptions  `json:"options"`
	Records []JSONRecord `json:"records"`
	Summary JSONSummary  `json:"summary"`
}

// JSONOptions echoes the digestion parameters.
type JSONOptions struct {
	Mode               string    `json:"mode"`
	MinLength          int       `json:"minLength"`
	MaxLength          int       `json:"maxLength"`
	Miscleavages       int       `json:"miscleavages"`
	MethionineCleavage bool      `json:"methionineCleavage"`
	Rules              JSONRules `json:"rules"`
}

// JSONRules lists the residues of each cleavage rule set.
type JSONRules struct {
	Pre     []string `json:"pre"`
	NotPost []string `json:"notPost"`
	Post    []string `json:"post"`
}

// JSONRecord represents a single record's peptides.
type JSONRecord struct {
	ID       string        `json:"id"`
	Source   string        `json:"source,omitempty"`
	Line     int           `json:"line,omitempty"`
	Length   int           `json:"length"`
	Peptides []JSONPeptide `json:"peptides"`
	Error    string        `json:"error,omitempty"`
}

// JSONPeptide represents one peptide. Positions are 1-based and inclusive.
type JSONPeptide struct {
	Sequence     string `json:"sequence"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	Length       int    `json:"length"`
	Miscleavages int    `json:"miscleavages"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	Sequences                int           `json:"sequences"`
	SequencesDigested        int           `json:"sequencesDigested"`
	SequencesErrored         int           `json:"sequencesErrored"`
	SequencesWithoutPeptides int           `json:"sequencesWithoutPeptides"`
	Residues                 int           `json:"residues"`
	Peptides                 int           `json:"peptides"`
	UniquePeptides           int           `json:"uniquePeptides"`
	ByLength                 []JSONLengths `json:"byLength"`
}

// JSONLengths is one bucket of the peptide length histogram.
type JSONLengths struct {
	Length int `json:"length"`
	Count  int `json:"count"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Peptides, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Records: make([]JSONRecord, 0),
		Summary: JSONSummary{
			ByLength: make([]JSONLengths, 0),
		},
	}

	if result == nil {
		return output
	}

	opts := result.Options
	output.Options = JSONOptions{
		Mode:               opts.Mode.String(),
		MinLength:          opts.MinLen,
		MaxLength:          opts.MaxLen,
		Miscleavages:       opts.Miscleavages,
		MethionineCleavage: opts.MethionineCleavage,
		Rules: JSONRules{
			Pre:     opts.Rules.Pre.Residues(),
			NotPost: opts.Rules.NotPost.Residues(),
			Post:    opts.Rules.Post.Residues(),
		},
	}

	output.Records = make([]JSONRecord, 0, len(result.Records))
	for _, outcome := range result.Records {
		record := JSONRecord{
			ID:       outcome.Record.ID,
			Source:   outcome.Record.Source,
			Line:     outcome.Record.Line,
			Length:   len(outcome.Record.Sequence),
			Peptides: make([]JSONPeptide, 0, len(outcome.Peptides)),
		}

		if outcome.Error != nil {
			record.Error = outcome.Error.Error()
		}

		for _, peptide := range outcome.Peptides {
			record.Peptides = append(record.Peptides, JSONPeptide{
				Sequence:     peptide.Sequence,
				Start:        peptide.Start + 1,
				End:          peptide.End + 1,
				Length:       peptide.Len(),
				Miscleavages: missedCleavages(outcome.Record.Sequence, peptide, opts),
			})
		}

		output.Records = append(output.Records, record)
	}

	stats := result.Stats
	output.Summary.Sequences = stats.Sequences
	output.Summary.SequencesDigested = stats.SequencesDigested
	output.Summary.SequencesErrored = stats.SequencesErrored
	output.Summary.SequencesWithoutPeptides = stats.SequencesWithoutPeptides
	output.Summary.Residues = stats.Residues
	output.Summary.Peptides = stats.Peptides
	output.Summary.UniquePeptides = stats.UniquePeptides

	lengths := make([]int, 0, len(stats.ByLength))
	for length := range stats.ByLength {
		lengths = append(lengths, length)
	}
	slices.Sort(lengths)
	for _, length := range lengths {
		output.Summary.ByLength = append(output.Summary.ByLength, JSONLengths{
			Length: length,
			Count:  stats.ByLength[length],
		})
	}

	return output
}
