package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pepdigest/internal/logging"
	"github.com/yaklabco/pepdigest/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand assembles the pepdigest command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var (
		debug      bool
		configPath string
		color      string
	)

	root := &cobra.Command{
		Use:   "pepdigest",
		Short: "Simulate enzymatic digestion of protein sequences",
		Long: `pepdigest enumerates the peptides produced by cutting protein sequences
with a protease.

It supports full, semi-specific and non-specific digestion, missed
cleavages, peptide length bounds, and excision of an N-terminal initiator
methionine. Enzymes come from named presets or custom cleavage rules, and
results can be written as plain text, TSV, JSON, or a summary.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !pretty.ValidColorMode(color) {
				return usageError(fmt.Errorf("invalid --color %q: must be auto, always or never", color))
			}
			if debug {
				logging.SetLevel("debug")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.StringVar(&configPath, "config", "", "path to config file")
	flags.StringVar(&color, "color", pretty.ColorAuto, "colorize output: auto, always, never")

	root.AddCommand(
		newDigestCommand(),
		newEnzymesCommand(),
		newConfigCommand(),
		newInitCommand(),
		newVersionCommand(info),
	)

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
	installHelp(root)

	return root
}
