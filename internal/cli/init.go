package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pepdigest/internal/configloader"
	"github.com/yaklabco/pepdigest/internal/logging"
	"github.com/yaklabco/pepdigest/pkg/config"
	"github.com/yaklabco/pepdigest/pkg/enzyme"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new pepdigest configuration file",
		Long: `Create a new .pepdigest.yml configuration file in the current directory
with the default digestion settings. Edit it to pick an enzyme, length
bounds, missed cleavages, or custom cleavage rules.

Examples:
  pepdigest init                     Create minimal .pepdigest.yml
  pepdigest init --full              Create full config with every setting and enzyme documented
  pepdigest init --format json       Create .pepdigest.json instead
  pepdigest init --output custom.yml Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .pepdigest.yml or .pepdigest.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	// Validate format
	if flags.format != "yaml" && flags.format != formatJSON {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		if flags.format == formatJSON {
			outputPath = ".pepdigest.json"
		} else {
			outputPath = configloader.DefaultProjectConfig()
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:    flags.full,
		Format:  flags.format,
		Enzymes: enzymeInfos(enzyme.DefaultRegistry),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(cmd.Context(), absPath, content, flags.force); err != nil {
		return ioError(err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template documents every setting and enzyme")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'pepdigest enzymes' to see all enzyme presets")

	return nil
}

// enzymeInfos converts registry enzymes to template metadata.
func enzymeInfos(registry *enzyme.Registry) []config.EnzymeInfo {
	enzymes := registry.Enzymes()
	infos := make([]config.EnzymeInfo, 0, len(enzymes))
	for _, e := range enzymes {
		infos = append(infos, config.EnzymeInfo{
			Name:        e.Name,
			Description: e.Description,
			Rules:       e.Summary(),
		})
	}
	return infos
}
