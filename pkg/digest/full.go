package digest

import "iter"

// Full yields the peptides bounded on both termini by cleavage sites or
// sequence ends, with at most miscleavages uncut sites inside each peptide.
//
// When methionineCleavage is set and seq starts with 'M', the site after the
// first residue is also a boundary. Peptides that cross it are not charged a
// missed cleavage. When seq does not start with 'M' the flag has no effect.
func Full(seq string, minLen, maxLen int, rules Rules, miscleavages int, methionineCleavage bool) iter.Seq[Peptide] {
	return func(yield func(Peptide) bool) {
		n := len(seq)
		if n == 0 {
			return
		}
		methionine := methionineCleavage && seq[0] == 'M'
		sites := newSiteMatcher(rules)
		window := newStartWindow(miscleavages, methionine)

		for end := 0; end < n; end++ {
			boundary := end == n-1 ||
				(end == 0 && methionine) ||
				sites.at(seq, end)
			if !boundary {
				continue
			}
			for k := 0; k < window.Len(); k++ {
				start := window.At(k)
				if inBounds(end-start+1, minLen, maxLen) {
					if !yield(newPeptide(seq, start, end)) {
						return
					}
				}
			}
			window.Push(end + 1)
		}
	}
}

// Boundaries returns the boundary positions Full would cut at, ascending.
// Position i is the site after residue i; the last position is always the
// sequence end.
func Boundaries(seq string, rules Rules, methionineCleavage bool) []int {
	n := len(seq)
	if n == 0 {
		return nil
	}
	methionine := methionineCleavage && seq[0] == 'M'
	sites := newSiteMatcher(rules)
	var out []int
	for i := 0; i < n-1; i++ {
		if (i == 0 && methionine) || sites.at(seq, i) {
			out = append(out, i)
		}
	}
	return append(out, n-1)
}
