// Package digest enumerates the peptides produced by simulated enzymatic
// cleavage of a protein sequence.
//
// Three engines share one cleavage-site predicate:
//
//   - Full yields peptides bounded on both termini by cleavage sites
//     (or the sequence ends), tolerating up to N missed cleavages.
//   - Semi yields peptides that are enzymatic on at least one terminus.
//   - NonSpecific yields every substring within the length bounds.
//
// Peptides dispatches on Options.Mode. All engines return a lazy, single-pass
// iter.Seq; stopping the range loop stops the enumeration. Each call owns its
// own state, so engines may be invoked concurrently on disjoint inputs.
//
// Usage:
//
//	opts := digest.DefaultOptions() // trypsin, 6-50 residues, full digestion
//	opts.Miscleavages = 2
//	peps, err := digest.Peptides("MRPSGTAGAALLALLAALCPASR", opts)
//	if err != nil {
//		return err
//	}
//	for p := range peps {
//		fmt.Println(p.Start, p.End, p.Sequence)
//	}
//
// Residues are single bytes. The alphabet is not validated.
package digest
