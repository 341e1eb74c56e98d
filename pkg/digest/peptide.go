package digest

import "iter"

// Peptide is the substring seq[Start..End] of a digested sequence.
// Both bounds are 0-based and inclusive.
type Peptide struct {
	Start    int
	End      int
	Sequence string
}

func newPeptide(seq string, start, end int) Peptide {
	return Peptide{Start: start, End: end, Sequence: seq[start : end+1]}
}

// Len returns the number of residues.
func (p Peptide) Len() int { return p.End - p.Start + 1 }

// String returns the peptide residues.
func (p Peptide) String() string { return p.Sequence }

// Strings maps a peptide sequence to its residue strings.
func Strings(peps iter.Seq[Peptide]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for p := range peps {
			if !yield(p.Sequence) {
				return
			}
		}
	}
}

// Unique drops peptides whose residues were already yielded. The same
// substring can arise from different cleavage paths; the first occurrence wins.
func Unique(peps iter.Seq[Peptide]) iter.Seq[Peptide] {
	return func(yield func(Peptide) bool) {
		seen := make(map[string]struct{})
		for p := range peps {
			if _, dup := seen[p.Sequence]; dup {
				continue
			}
			seen[p.Sequence] = struct{}{}
			if !yield(p) {
				return
			}
		}
	}
}

// Set collects the distinct peptide residues.
func Set(peps iter.Seq[Peptide]) map[string]struct{} {
	out := make(map[string]struct{})
	for p := range peps {
		out[p.Sequence] = struct{}{}
	}
	return out
}

// inBounds reports whether a peptide of n residues is emitted.
func inBounds(n, minLen, maxLen int) bool {
	return n >= minLen && n <= maxLen
}
