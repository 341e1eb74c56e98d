package runner

import (
	"time"

	"github.com/yaklabco/pepdigest/pkg/digest"
)

// Outcome is the digestion of one record.
type Outcome struct {
	Record Record

	// Peptides in engine order. Nil when Error is set.
	Peptides []digest.Peptide

	// Error is set if the record could not be digested.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// Sequences is the number of records read.
	Sequences int

	// SequencesDigested is the number of records digested without error.
	SequencesDigested int

	// SequencesErrored is the number of records that failed.
	SequencesErrored int

	// Residues is the total length of the digested sequences.
	Residues int

	// Peptides is the number of peptides across all records.
	Peptides int

	// UniquePeptides is the number of distinct peptide strings across all records.
	UniquePeptides int

	// SequencesWithoutPeptides counts digested records that yielded nothing.
	SequencesWithoutPeptides int

	// ByLength maps peptide length to count.
	ByLength map[int]int

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Records holds one outcome per record, in input order.
	Records []Outcome

	// Options are the digestion options every record used.
	Options digest.Options

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// seen tracks distinct peptides for Stats.UniquePeptides.
	seen map[string]struct{}
}

// HasFailures reports whether any record failed to digest.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.SequencesErrored > 0
}

// HasPeptides reports whether any peptide was produced.
func (r *Result) HasPeptides() bool {
	if r == nil {
		return false
	}
	return r.Stats.Peptides > 0
}

func newResult(opts digest.Options, capacity int) *Result {
	return &Result{
		Records: make([]Outcome, 0, capacity),
		Options: opts,
		Stats: Stats{
			ByLength: make(map[int]int),
		},
		seen: make(map[string]struct{}),
	}
}

// accumulate updates the result with a record outcome.
func (r *Result) accumulate(outcome Outcome) {
	r.Records = append(r.Records, outcome)
	r.Stats.Sequences++

	if outcome.Error != nil {
		r.Stats.SequencesErrored++
		return
	}

	r.Stats.SequencesDigested++
	r.Stats.Residues += len(outcome.Record.Sequence)
	r.Stats.Peptides += len(outcome.Peptides)
	if len(outcome.Peptides) == 0 {
		r.Stats.SequencesWithoutPeptides++
	}

	for _, p := range outcome.Peptides {
		r.Stats.ByLength[p.Len()]++
		if _, ok := r.seen[p.Sequence]; !ok {
			r.seen[p.Sequence] = struct{}{}
			r.Stats.UniquePeptides++
		}
	}
}
