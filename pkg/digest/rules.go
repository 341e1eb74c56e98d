package digest

// Rules describes where an enzyme cuts.
//
// A site lies after residue a and before residue b. It is a cleavage site when
// a is in Pre and b is not in NotPost, or when b is in Post.
type Rules struct {
	Pre     ResidueSet
	NotPost ResidueSet
	Post    ResidueSet
}

// Trypsin returns the default rule set: cut after K or R unless followed by P.
func Trypsin() Rules {
	return Rules{
		Pre:     NewResidueSet("KR"),
		NotPost: NewResidueSet("P"),
	}
}

// IsCleavageSite reports whether the site between a and b is enzymatic.
func IsCleavageSite(a, b byte, pre, notPost, post ResidueSet) bool {
	return (pre.Contains(a) && !notPost.Contains(b)) || post.Contains(b)
}

// IsCleavageSite reports whether the site between a and b is enzymatic under r.
func (r Rules) IsCleavageSite(a, b byte) bool {
	return IsCleavageSite(a, b, r.Pre, r.NotPost, r.Post)
}

// Empty reports whether no site can ever match.
func (r Rules) Empty() bool {
	return r.Pre.Empty() && r.Post.Empty()
}

// siteMatcher evaluates the predicate over one sequence, skipping the
// membership tests of an absent Pre or Post set.
type siteMatcher struct {
	rules     Rules
	checkPre  bool
	checkPost bool
}

func newSiteMatcher(r Rules) siteMatcher {
	return siteMatcher{
		rules:     r,
		checkPre:  !r.Pre.Empty(),
		checkPost: !r.Post.Empty(),
	}
}

// at reports whether the site after seq[i] is enzymatic. i must be < len(seq)-1.
func (m siteMatcher) at(seq string, i int) bool {
	a, b := seq[i], seq[i+1]
	if m.checkPre && m.rules.Pre.Contains(a) && !m.rules.NotPost.Contains(b) {
		return true
	}
	return m.checkPost && m.rules.Post.Contains(b)
}

// MissedCleavages counts the enzymatic sites strictly inside p, the cuts a
// digestion left uncut to produce it. With methionineCleavage the site after
// an N-terminal 'M' is a free boundary and is not counted.
func MissedCleavages(seq string, p Peptide, rules Rules, methionineCleavage bool) int {
	if p.Start < 0 || p.End >= len(seq) || p.Start >= p.End {
		return 0
	}

	m := newSiteMatcher(rules)
	methionine := methionineCleavage && seq[0] == 'M'

	missed := 0
	for i := p.Start; i < p.End; i++ {
		if i == 0 && methionine {
			continue
		}
		if m.at(seq, i) {
			missed++
		}
	}
	return missed
}
