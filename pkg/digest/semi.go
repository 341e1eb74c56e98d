package digest

import "iter"

// Semi yields the peptides that are enzymatic on at least one terminus, with
// the same miscleavage and methionine handling as Full.
//
// The scan runs residue by residue. At a boundary it yields every peptide
// ending there whose start lies inside the open window, enzymatic or not.
// Elsewhere it yields the peptides that begin at a tracked (enzymatic) start
// and end at the current, non-enzymatic position.
func Semi(seq string, minLen, maxLen int, rules Rules, miscleavages int, methionineCleavage bool) iter.Seq[Peptide] {
	return func(yield func(Peptide) bool) {
		n := len(seq)
		if n == 0 {
			return
		}
		methionine := methionineCleavage && seq[0] == 'M'
		sites := newSiteMatcher(rules)
		window := newStartWindow(miscleavages, methionine)

		for i := 0; i < n; i++ {
			terminal := i == n-1 ||
				(i == 0 && methionine) ||
				sites.at(seq, i)

			if terminal {
				if window.Len() > 0 {
					// starts j with minLen <= i-j+1 <= maxLen, from the oldest open start
					from := max(window.Oldest(), i-maxLen+1)
					to := i - max(minLen, 1) + 1
					for j := from; j <= to; j++ {
						if !yield(newPeptide(seq, j, i)) {
							return
						}
					}
				}
				window.Push(i + 1)
				continue
			}

			for k := 0; k < window.Len(); k++ {
				start := window.At(k)
				if inBounds(i-start+1, minLen, maxLen) {
					if !yield(newPeptide(seq, start, i)) {
						return
					}
				}
			}
		}
	}
}
