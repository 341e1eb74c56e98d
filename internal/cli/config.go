package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pepdigest/internal/configloader"
)

// newConfigCommand prints the effective configuration as YAML.
func newConfigCommand() *cobra.Command {
	var noEnv bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration a digest run in this directory would use.

Defaults, the system, user and project files (or --config) and PEPDIGEST_*
variables are merged in that order. The header lists the files read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("get config flag: %w", err)
			}
			workDir, err := os.Getwd()
			if err != nil {
				return ioError(fmt.Errorf("get working directory: %w", err))
			}

			result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
				WorkingDir:   workDir,
				ExplicitPath: configPath,
				IgnoreEnv:    noEnv,
			})
			if err != nil {
				return configError(errors.Join(errors.New("failed to load configuration"), err))
			}

			content, err := result.Config.ToYAMLWithHeader(sourcesHeader(result.LoadedFrom))
			if err != nil {
				return fmt.Errorf("encode configuration: %w", err)
			}
			if _, err := cmd.OutOrStdout().Write(content); err != nil {
				return ioError(fmt.Errorf("write configuration: %w", err))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noEnv, "no-env", false, "ignore PEPDIGEST_* environment variables")

	return cmd
}

func sourcesHeader(files []string) string {
	if len(files) == 0 {
		return "# Effective pepdigest configuration (defaults only)"
	}
	var b strings.Builder
	b.WriteString("# Effective pepdigest configuration, merged from:\n")
	for _, f := range files {
		b.WriteString("#   " + f + "\n")
	}
	return b.String()
}
