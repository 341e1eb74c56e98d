package digest

import (
	"math/bits"
	"strings"
)

// ResidueSet is an immutable set of residue symbols.
// The zero value is the empty set.
type ResidueSet [4]uint64

// NewResidueSet returns the set of every byte in residues.
func NewResidueSet(residues string) ResidueSet {
	var s ResidueSet
	for i := 0; i < len(residues); i++ {
		c := residues[i]
		s[c>>6] |= 1 << (c & 63)
	}
	return s
}

// ResiduesOf builds a set from a list of single-residue strings.
// Empty entries are ignored; longer entries contribute every byte.
func ResiduesOf(residues []string) ResidueSet {
	return NewResidueSet(strings.Join(residues, ""))
}

// Contains reports whether c is in the set.
func (s ResidueSet) Contains(c byte) bool {
	return s[c>>6]&(1<<(c&63)) != 0
}

// Empty reports whether the set has no members.
func (s ResidueSet) Empty() bool {
	return s == ResidueSet{}
}

// Len returns the number of members.
func (s ResidueSet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// String returns the members in ascending byte order.
func (s ResidueSet) String() string {
	var b strings.Builder
	for c := 0; c < 256; c++ {
		if s.Contains(byte(c)) {
			b.WriteByte(byte(c))
		}
	}
	return b.String()
}

// Residues returns the members as single-residue strings.
func (s ResidueSet) Residues() []string {
	str := s.String()
	out := make([]string, len(str))
	for i := range str {
		out[i] = str[i : i+1]
	}
	return out
}
