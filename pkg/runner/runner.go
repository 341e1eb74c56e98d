package runner

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/pepdigest/internal/logging"
	"github.com/yaklabco/pepdigest/pkg/digest"
)

// cancelCheckInterval is how many peptides a worker collects between
// context checks.
const cancelCheckInterval = 4096

// DigestFunc enumerates the peptides of one sequence.
type DigestFunc func(seq string, opts digest.Options) (iter.Seq[digest.Peptide], error)

// Runner orchestrates multi-sequence digestion.
type Runner struct {
	// Digest produces the peptides of one sequence.
	Digest DigestFunc
}

// New creates a Runner backed by digest.Peptides.
func New() *Runner {
	return &Runner{Digest: digest.Peptides}
}

// Run collects the records named by opts and digests them concurrently.
// It returns a deterministic collection of Outcome values and aggregate stats.
//
// The runner:
//   - Validates the digestion options before reading any input
//   - Digests records concurrently using a worker pool
//   - Aggregates outcomes in input order
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	if err := opts.Digest.Validate(); err != nil {
		return nil, err
	}

	records, err := Collect(ctx, opts)
	if err != nil {
		return nil, err
	}

	result, err := r.RunRecords(ctx, records, opts)
	if result != nil {
		result.Stats.Elapsed = time.Since(start)
		logger.Debug("run complete",
			logging.FieldSequences, result.Stats.Sequences,
			logging.FieldPeptides, result.Stats.Peptides,
			logging.FieldElapsed, result.Stats.Elapsed)
	}
	return result, err
}

// RunRecords digests records that were already collected.
func (r *Runner) RunRecords(ctx context.Context, records []Record, opts Options) (*Result, error) {
	result := newResult(opts.Digest, len(records))
	if len(records) == 0 {
		return result, nil
	}

	digestFn := r.Digest
	if digestFn == nil {
		digestFn = digest.Peptides
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than records.
	if jobs > len(records) {
		jobs = len(records)
	}

	workCh := make(chan int)
	outCh := make(chan indexedOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, digestFn, records, opts, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for i := range records {
			select {
			case <-ctx.Done():
				return
			case workCh <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; slot outcomes by record index.
	outcomes := make([]*Outcome, len(records))
	for out := range outCh {
		outcomes[out.index] = &out.outcome
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

type indexedOutcome struct {
	index   int
	outcome Outcome
}

// worker digests the records whose indices arrive on workCh.
func worker(
	ctx context.Context,
	digestFn DigestFunc,
	records []Record,
	opts Options,
	workCh <-chan int,
	outCh chan<- indexedOutcome,
) {
	logger := logging.FromContext(ctx)

	for index := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		record := records[index]
		outcome := Outcome{Record: record}

		peptides, err := digestRecord(ctx, digestFn, record, opts)
		if err != nil {
			logger.Warn("digest failed", logging.FieldRecord, record.ID, logging.FieldError, err)
			outcome.Error = err
		} else {
			outcome.Peptides = peptides
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- indexedOutcome{index: index, outcome: outcome}:
		}
	}
}

func digestRecord(ctx context.Context, digestFn DigestFunc, record Record, opts Options) ([]digest.Peptide, error) {
	peps, err := digestFn(record.Sequence, opts.Digest)
	if err != nil {
		return nil, fmt.Errorf("digest %s: %w", record.ID, err)
	}
	if opts.Unique {
		peps = digest.Unique(peps)
	}

	out := make([]digest.Peptide, 0)
	for p := range peps {
		out = append(out, p)
		if len(out)%cancelCheckInterval == 0 && ctx.Err() != nil {
			return nil, fmt.Errorf("digest %s: %w", record.ID, ctx.Err())
		}
	}
	return out, nil
}
