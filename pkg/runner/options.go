// Package runner reads sequence records from files, directories, stdin and
// the command line, and digests them on a bounded worker pool.
package runner

import (
	"io"

	"github.com/yaklabco/pepdigest/pkg/digest"
)

// StdinPath names standard input among Options.Paths.
const StdinPath = "-"

// Options controls a multi-sequence run.
type Options struct {
	// Paths lists sequence files, directories and StdinPath.
	// Relative entries resolve against WorkingDir, or the process working
	// directory when it is empty.
	Paths      []string
	WorkingDir string

	// Sequences are inline sequences; they come before any file.
	Sequences []string

	// Extensions selects files while walking a directory, compared without
	// regard to case. Empty means DefaultExtensions. Named files are always read.
	Extensions []string

	// Stdin backs StdinPath. Nil means os.Stdin.
	Stdin io.Reader

	Digest digest.Options

	// Unique keeps the first occurrence of each peptide per record.
	Unique bool

	// Jobs bounds the worker pool. Zero or less means runtime.NumCPU.
	Jobs int
}

// DefaultExtensions lists the file extensions picked up in directories.
func DefaultExtensions() []string {
	return []string{".seq", ".txt", ".pep"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}
