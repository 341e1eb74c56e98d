package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/pepdigest/internal/configloader"
	"github.com/yaklabco/pepdigest/internal/logging"
	"github.com/yaklabco/pepdigest/pkg/config"
	"github.com/yaklabco/pepdigest/pkg/digest"
	"github.com/yaklabco/pepdigest/pkg/enzyme"
	"github.com/yaklabco/pepdigest/pkg/fsutil"
	"github.com/yaklabco/pepdigest/pkg/reporter"
	"github.com/yaklabco/pepdigest/pkg/runner"
)

// ErrNoInput is returned when there is nothing to digest and stdin is a terminal.
var ErrNoInput = errors.New("no input: pass sequence files, --seq, or pipe sequences on stdin")

type digestFlags struct {
	sequences          []string
	enzyme             string
	pre                string
	notPost            string
	post               string
	minLength          int
	maxLength          int
	miscleavages       int
	methionineCleavage bool
	digestion          string
	unique             bool
	format             string
	jobs               int
	extensions         []string
	positions          bool
	group              bool
	noHeader           bool
	noSummary          bool
	compact            bool
	output             string
}

func newDigestCommand() *cobra.Command {
	flags := &digestFlags{}

	cmd := &cobra.Command{
		Use:   "digest [files...]",
		Short: "Digest protein sequences into peptides",
		Long:  digestLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, args, flags)
		},
	}

	addDigestFlags(cmd, flags)

	return cmd
}

const digestLongDescription = `Digest protein sequences into peptides.

Sequences are read from files (one per line, optionally ID<TAB>SEQUENCE),
from directories of .seq, .txt and .pep files, from --seq, or from stdin
when no input is named. Use "-" to read stdin alongside files.

Cleavage rules come from an enzyme preset (see 'pepdigest enzymes') unless
--pre, --not-post or --post are given, in which case those residues replace
the enzyme's rules entirely.

Examples:
  pepdigest digest --seq MKWVTFISLLLLFSSAYSRGVFRR
  pepdigest digest proteins.seq             # Tryptic digest of each line
  pepdigest digest -e lys-c -m 2 proteins/  # Lys-C, two missed cleavages
  pepdigest digest --digestion semi --format tsv proteins.seq
  pepdigest digest --pre FWY --not-post P --format json -o peptides.json proteins.seq
  cat proteins.seq | pepdigest digest --unique --format summary`

func addDigestFlags(cmd *cobra.Command, flags *digestFlags) {
	cmd.Flags().StringArrayVarP(&flags.sequences, "seq", "s", nil, "sequence to digest (repeatable)")
	cmd.Flags().StringVarP(&flags.enzyme, "enzyme", "e", config.DefaultEnzyme, "enzyme preset")
	cmd.Flags().StringVar(&flags.pre, "pre", "", "custom rules: residues cut after, e.g. KR")
	cmd.Flags().StringVar(&flags.notPost, "not-post", "", "custom rules: residues that block a pre cut when next, e.g. P")
	cmd.Flags().StringVar(&flags.post, "post", "", "custom rules: residues cut before, e.g. D")
	cmd.Flags().IntVar(&flags.minLength, "min-length", config.DefaultMinLength, "minimum peptide length")
	cmd.Flags().IntVar(&flags.maxLength, "max-length", config.DefaultMaxLength, "maximum peptide length")
	cmd.Flags().IntVarP(&flags.miscleavages, "miscleavages", "m", config.DefaultMiscleavages,
		"uncut cleavage sites a peptide may span")
	cmd.Flags().BoolVar(&flags.methionineCleavage, "methionine-cleavage", config.DefaultMethionineCleavage,
		"treat the site after an N-terminal M as a free cut")
	cmd.Flags().StringVarP(&flags.digestion, "digestion", "d", string(config.DigestionFull),
		"digestion mode: full, semi, none")
	cmd.Flags().BoolVarP(&flags.unique, "unique", "u", false, "drop repeated peptides within a sequence")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatText),
		"output format: text, tsv, json, summary")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", runner.DefaultExtensions(),
		"file extensions read from directories")
	cmd.Flags().BoolVar(&flags.positions, "positions", false, "prefix text peptides with their 1-based range")
	cmd.Flags().BoolVar(&flags.group, "group", false, "group text peptides under a header per sequence")
	cmd.Flags().BoolVar(&flags.noHeader, "no-header", false, "omit the tsv header row")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the text summary line on stderr")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"write the report to a file instead of stdout, replaced only on success")
}

// cliConfig builds a configuration holding only the flags set on the command line.
func cliConfig(cmd *cobra.Command, flags *digestFlags) (*config.Config, error) {
	changed := cmd.Flags().Changed
	cfg := &config.Config{}

	if changed("enzyme") {
		cfg.Enzyme = flags.enzyme
	}
	if changed("pre") || changed("not-post") || changed("post") {
		cfg.Rules = &config.RulesConfig{
			Pre:     splitResidues(flags.pre),
			NotPost: splitResidues(flags.notPost),
			Post:    splitResidues(flags.post),
		}
	}
	// Zero means "unset" when merging, so explicit zeros are rejected here.
	if changed("min-length") {
		if flags.minLength < 1 {
			return nil, fmt.Errorf("--min-length must be at least 1, got %d", flags.minLength)
		}
		cfg.MinLength = flags.minLength
	}
	if changed("max-length") {
		if flags.maxLength < 1 {
			return nil, fmt.Errorf("--max-length must be at least 1, got %d", flags.maxLength)
		}
		cfg.MaxLength = flags.maxLength
	}
	if changed("miscleavages") {
		cfg.Miscleavages = config.Ptr(flags.miscleavages)
	}
	if changed("methionine-cleavage") {
		cfg.MethionineCleavage = config.Ptr(flags.methionineCleavage)
	}
	if changed("digestion") {
		cfg.Digestion = config.Digestion(flags.digestion)
	}
	if changed("unique") {
		cfg.Unique = config.Ptr(flags.unique)
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("jobs") {
		if flags.jobs < 0 {
			return nil, fmt.Errorf("--jobs must not be negative, got %d", flags.jobs)
		}
		cfg.Jobs = flags.jobs
	}

	return cfg, nil
}

// splitResidues turns "KR" into ["K", "R"]. Commas and spaces are ignored.
func splitResidues(s string) []string {
	out := make([]string, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ',', ' ':
			continue
		}
		out = append(out, s[i:i+1])
	}
	return out
}

func runDigest(cmd *cobra.Command, args []string, flags *digestFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	cliCfg, err := cliConfig(cmd, flags)
	if err != nil {
		return usageError(err)
	}

	paths := args
	if len(paths) == 0 && len(flags.sequences) == 0 {
		if isTerminal(cmd.InOrStdin()) {
			return usageError(ErrNoInput)
		}
		paths = []string{runner.StdinPath}
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return ioError(fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return configError(errors.Join(errors.New("failed to load configuration"), err))
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldSource, loadResult.LoadedFrom)
	}

	digestOpts, err := configloader.Resolve(finalCfg, enzyme.DefaultRegistry)
	if err != nil {
		return configError(err)
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return configError(fmt.Errorf("invalid format: %w", err))
	}

	logger.Debug("configuration loaded",
		logging.FieldEnzyme, configloader.EnzymeLabel(finalCfg),
		logging.FieldMode, digestOpts.Mode,
		logging.FieldMinLength, digestOpts.MinLen,
		logging.FieldMaxLength, digestOpts.MaxLen,
		logging.FieldMiscleavages, digestOpts.Miscleavages,
		logging.FieldMethionine, digestOpts.MethionineCleavage,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldFormat, format,
	)

	runOpts := runner.Options{
		Paths:      paths,
		Sequences:  flags.sequences,
		WorkingDir: workDir,
		Extensions: flags.extensions,
		Stdin:      cmd.InOrStdin(),
		Digest:     digestOpts,
		Unique:     finalCfg.UniqueValue(),
		Jobs:       finalCfg.Jobs,
	}

	logger.Debug("starting digestion",
		logging.FieldInputs, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return classifyRunError(err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	out := cmd.OutOrStdout()
	var outFile *fsutil.AtomicFile
	if flags.output != "" {
		outFile, err = fsutil.CreateAtomic(flags.output, 0)
		if err != nil {
			return ioError(fmt.Errorf("open output: %w", err))
		}
		defer outFile.Abort()
		out = outFile
	}

	rep, err := reporter.New(reporter.Options{
		Writer:        out,
		ErrorWriter:   cmd.ErrOrStderr(),
		Format:        format,
		Color:         colorMode,
		GroupByRecord: flags.group,
		ShowPositions: flags.positions,
		ShowHeader:    !flags.noHeader,
		ShowSummary:   !flags.noSummary,
		Compact:       flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return ioError(fmt.Errorf("report results: %w", err))
	}

	if outFile != nil {
		if err := outFile.Commit(); err != nil {
			return ioError(fmt.Errorf("write output: %w", err))
		}
		logger.Debug("wrote report", logging.FieldPath, outFile.Path())
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrDigestFailures
	}

	return nil
}

// classifyRunError attaches an exit code to a runner error.
func classifyRunError(err error) error {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, runner.ErrMalformedRecord),
		errors.Is(err, digest.ErrInvalidConfiguration):
		return configError(err)
	case errors.As(err, &pathErr):
		return ioError(err)
	default:
		return fmt.Errorf("digest run failed: %w", err)
	}
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
