package digest

import "iter"

// NonSpecific yields every substring of seq whose length lies in
// [minLen, maxLen], by ascending start and then ascending end.
// No cleavage rule applies.
func NonSpecific(seq string, minLen, maxLen int) iter.Seq[Peptide] {
	return func(yield func(Peptide) bool) {
		n := len(seq)
		first := max(minLen, 1)
		for start := 0; start < n; start++ {
			last := min(n-1, start+maxLen-1)
			for end := start + first - 1; end <= last; end++ {
				if !yield(newPeptide(seq, start, end)) {
					return
				}
			}
		}
	}
}
