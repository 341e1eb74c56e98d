package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pepdigest/internal/logging"
	"github.com/yaklabco/pepdigest/pkg/enzyme"
)

type enzymesFlags struct {
	format string
}

const formatJSON = "json"

// enzymeInfo represents an enzyme in JSON output.
type enzymeInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Pre         []string `json:"pre"`
	NotPost     []string `json:"notPost"`
	Post        []string `json:"post"`
	Aliases     []string `json:"aliases"`
}

func newEnzymesCommand() *cobra.Command {
	flags := &enzymesFlags{}

	cmd := &cobra.Command{
		Use:   "enzymes",
		Short: "List available enzyme presets",
		Long: `List all enzyme presets with their cleavage rules and aliases.

A site after residue a and before residue b is cut when a is in pre and
b is not in not-post, or when b is in post.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enzymes := enzyme.DefaultRegistry.Enzymes()

			switch flags.format {
			case formatJSON:
				return outputEnzymesJSON(cmd.OutOrStdout(), enzymes)
			case "text", "":
			default:
				return usageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}

			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")

			if len(enzymes) == 0 {
				logger.Info("no enzymes registered")
				return nil
			}

			logger.Info("available enzymes")

			for _, e := range enzymes {
				aliases := "-"
				if len(e.Aliases) > 0 {
					aliases = strings.Join(e.Aliases, ",")
				}

				logger.Info(e.Name,
					"rules", e.Summary(),
					"aliases", aliases,
					"description", e.Description,
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// outputEnzymesJSON writes enzymes as a JSON array.
func outputEnzymesJSON(w io.Writer, enzymes []enzyme.Enzyme) error {
	infos := make([]enzymeInfo, 0, len(enzymes))
	for _, e := range enzymes {
		aliases := e.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		infos = append(infos, enzymeInfo{
			Name:        e.Name,
			Description: e.Description,
			Pre:         e.Rules.Pre.Residues(),
			NotPost:     e.Rules.NotPost.Residues(),
			Post:        e.Rules.Post.Residues(),
			Aliases:     aliases,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding enzymes: %w", err)
	}
	return nil
}
