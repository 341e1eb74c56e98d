// Package enzyme catalogues the proteases pepdigest knows by name.
package enzyme

import (
	"strings"

	"github.com/yaklabco/pepdigest/pkg/digest"
)

// Enzyme is a named cleavage rule set.
type Enzyme struct {
	// Name is the canonical, lower-case identifier (e.g. "trypsin").
	Name string

	// Description is a one-line summary of where the enzyme cuts.
	Description string

	// Rules locate the cleavage sites.
	Rules digest.Rules

	// Aliases are alternative names accepted on lookup.
	Aliases []string
}

// New creates an enzyme from residue strings.
// pre, notPost and post list the residues of each rule set, e.g. "KR".
func New(name, description, pre, notPost, post string, aliases ...string) Enzyme {
	return Enzyme{
		Name:        name,
		Description: description,
		Rules: digest.Rules{
			Pre:     digest.NewResidueSet(pre),
			NotPost: digest.NewResidueSet(notPost),
			Post:    digest.NewResidueSet(post),
		},
		Aliases: aliases,
	}
}

// Specific reports whether the enzyme has any cleavage site at all.
func (e Enzyme) Specific() bool {
	return !e.Rules.Empty()
}

// Summary renders the rules as "pre=KR not-post=P post=-".
func (e Enzyme) Summary() string {
	parts := []string{
		"pre=" + orDash(e.Rules.Pre.String()),
		"not-post=" + orDash(e.Rules.NotPost.String()),
		"post=" + orDash(e.Rules.Post.String()),
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
