package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformedRecord is returned for input lines that are not a sequence.
var ErrMalformedRecord = errors.New("malformed sequence record")

// maxLineSize bounds one input line.
const maxLineSize = 64 * 1024 * 1024

// Record is one sequence to digest.
type Record struct {
	// ID labels the sequence in reports.
	ID string

	// Sequence holds the residues.
	Sequence string

	// Source is the input the record was read from.
	Source string

	// Line is the 1-based input line, 0 for inline sequences.
	Line int
}

// ReadRecords parses sequence lines from r.
//
// Each non-blank line is either SEQUENCE or ID<TAB>SEQUENCE. Lines starting
// with '#' are comments. Records without an ID are named "<name>:<line>".
func ReadRecords(r io.Reader, name string) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r\n")
		if trimmed := strings.TrimSpace(raw); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		// split before trimming so an empty ID or sequence keeps its tab
		id := name + ":" + strconv.Itoa(lineNo)
		seq := strings.TrimSpace(raw)
		if before, after, found := strings.Cut(raw, "\t"); found {
			id = strings.TrimSpace(before)
			seq = strings.TrimSpace(after)
			if id == "" {
				return nil, fmt.Errorf("%s:%d: %w: empty id", name, lineNo, ErrMalformedRecord)
			}
		}

		if err := checkSequence(seq); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}

		records = append(records, Record{ID: id, Sequence: seq, Source: name, Line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return records, nil
}

// checkSequence rejects empty sequences and embedded whitespace.
func checkSequence(seq string) error {
	if seq == "" {
		return fmt.Errorf("%w: empty sequence", ErrMalformedRecord)
	}
	if i := strings.IndexAny(seq, " \t\r\v\f"); i >= 0 {
		return fmt.Errorf("%w: whitespace at column %d", ErrMalformedRecord, i+1)
	}
	return nil
}

// Collect gathers the records of a run: inline sequences first, then every
// discovered input in order.
func Collect(ctx context.Context, opts Options) ([]Record, error) {
	var records []Record

	for i, seq := range opts.Sequences {
		seq = strings.TrimSpace(seq)
		if err := checkSequence(seq); err != nil {
			return nil, fmt.Errorf("--seq #%d: %w", i+1, err)
		}
		records = append(records, Record{ID: "seq:" + strconv.Itoa(i+1), Sequence: seq, Source: "seq"})
	}

	inputs, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	for _, input := range inputs {
		fileRecords, err := readInput(input, displayName(workDir, input), opts.Stdin)
		if err != nil {
			return nil, err
		}
		records = append(records, fileRecords...)
	}

	return records, nil
}

func readInput(path, name string, stdin io.Reader) ([]Record, error) {
	if path == StdinPath {
		if stdin == nil {
			stdin = os.Stdin
		}
		return ReadRecords(stdin, name)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return ReadRecords(f, name)
}

// displayName shortens path relative to workDir when it lies below it.
func displayName(workDir, path string) string {
	if path == StdinPath {
		return "stdin"
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
