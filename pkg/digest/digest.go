package digest

import "iter"

// Peptides validates opts and returns the peptides of seq for opts.Mode.
// Invalid options are rejected before any enumeration starts; an empty
// result is not an error.
func Peptides(seq string, opts Options) (iter.Seq[Peptide], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch opts.Mode {
	case ModeNone:
		return NonSpecific(seq, opts.MinLen, opts.MaxLen), nil
	case ModeSemi:
		return Semi(seq, opts.MinLen, opts.MaxLen, opts.Rules, opts.Miscleavages, opts.MethionineCleavage), nil
	default:
		return Full(seq, opts.MinLen, opts.MaxLen, opts.Rules, opts.Miscleavages, opts.MethionineCleavage), nil
	}
}

// Digest is Peptides with the residues only.
func Digest(seq string, opts Options) (iter.Seq[string], error) {
	peps, err := Peptides(seq, opts)
	if err != nil {
		return nil, err
	}
	return Strings(peps), nil
}
