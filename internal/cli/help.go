// Package cli provides the Cobra command structure for pepdigest.
package cli

import (
	"cmp"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/pepdigest/internal/configloader"
	"github.com/yaklabco/pepdigest/internal/ui/pretty"
)

// helpTheme holds the styles used for command help.
type helpTheme struct {
	command    lipgloss.Style
	heading    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	dim        lipgloss.Style
}

func newHelpTheme(colorEnabled bool) helpTheme {
	if !colorEnabled {
		p := lipgloss.NewStyle()
		return helpTheme{command: p, heading: p, subcommand: p, flag: p, dim: p}
	}
	return helpTheme{
		command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// installHelp replaces cobra's help and usage output for root and every
// subcommand. Colour follows --color as parsed at help time.
func installHelp(root *cobra.Command) {
	themeFor := func(cmd *cobra.Command, w io.Writer) helpTheme {
		mode, err := cmd.Flags().GetString("color")
		if err != nil {
			mode = pretty.ColorAuto
		}
		return newHelpTheme(pretty.IsColorEnabled(mode, w))
	}

	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		w := cmd.OutOrStdout()
		if err := writeHelp(w, cmd, themeFor(cmd, w)); err != nil {
			cmd.PrintErrln(err)
		}
	})
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		w := cmd.OutOrStderr()
		return writeUsage(w, cmd, themeFor(cmd, w))
	})
}

// writeHelp writes the description followed by the usage block.
func writeHelp(w io.Writer, cmd *cobra.Command, theme helpTheme) error {
	var b strings.Builder

	title := theme.command.Render(cmd.CommandPath())
	if cmd.Version != "" {
		title += " " + theme.dim.Render(cmd.Version)
	}
	b.WriteString(title + "\n\n")

	if text := cmp.Or(cmd.Long, cmd.Short); text != "" {
		b.WriteString(trimTrailingWhitespaces(text) + "\n\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write help: %w", err)
	}
	return writeUsage(w, cmd, theme)
}

// writeUsage writes the usage, command, flag and environment sections.
func writeUsage(w io.Writer, cmd *cobra.Command, theme helpTheme) error {
	var sections []string
	section := func(heading string, lines ...string) {
		sections = append(sections, theme.heading.Render(heading)+"\n"+strings.Join(lines, "\n"))
	}

	var usage []string
	if cmd.Runnable() {
		usage = append(usage, "  "+theme.command.Render(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		usage = append(usage, "  "+theme.command.Render(cmd.CommandPath()+" [command]"))
	}
	section("Usage:", usage...)

	if len(cmd.Aliases) > 0 {
		section("Aliases:", "  "+theme.dim.Render(strings.Join(cmd.Aliases, ", ")))
	}
	if cmd.HasExample() {
		section("Examples:", theme.dim.Render(cmd.Example))
	}
	if cmd.HasAvailableSubCommands() {
		section("Available Commands:", commandRows(cmd, theme)...)
	}
	if cmd.HasAvailableLocalFlags() {
		section("Flags:", flagRows(cmd.LocalFlags(), theme)...)
	}
	if cmd.HasAvailableInheritedFlags() {
		section("Global Flags:", flagRows(cmd.InheritedFlags(), theme)...)
	}
	if hasEnvironment(cmd) {
		section("Environment:", environmentRows(theme)...)
	}

	out := strings.Join(sections, "\n\n") + "\n"
	if cmd.HasAvailableSubCommands() {
		out += fmt.Sprintf("\nUse \"%s\" for more information about a command.\n",
			theme.command.Render(cmd.CommandPath()+" [command] --help"))
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write usage: %w", err)
	}
	return nil
}

func commandRows(cmd *cobra.Command, theme helpTheme) []string {
	var subs []*cobra.Command
	width := 0
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() || sub.Name() == "help" {
			subs = append(subs, sub)
			width = max(width, len(sub.Name()))
		}
	}

	rows := make([]string, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, "  "+theme.subcommand.Render(rpad(sub.Name(), width))+"   "+sub.Short)
	}
	return rows
}

// flagRows renders one aligned row per visible flag: "-s, --name type   usage (default x)".
func flagRows(flags *pflag.FlagSet, theme helpTheme) []string {
	type row struct{ name, argType, usage string }

	var rows []row
	width := 0
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		argType, usage := pflag.UnquoteUsage(f)
		if !defaultIsZero(f) {
			usage += fmt.Sprintf(" (default %s)", formatDefault(f))
		}

		name := "    --" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", --" + f.Name
		}
		rows = append(rows, row{name: name, argType: argType, usage: usage})
		width = max(width, len(name)+len(argType)+1)
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		left := theme.flag.Render(r.name)
		plainLen := len(r.name)
		if r.argType != "" {
			left += " " + theme.dim.Render(r.argType)
			plainLen += 1 + len(r.argType)
		}
		lines = append(lines, "  "+left+strings.Repeat(" ", width-plainLen)+"   "+r.usage)
	}
	return lines
}

func defaultIsZero(f *pflag.Flag) bool {
	switch f.Value.Type() {
	case "bool":
		return f.DefValue == "false"
	case "int", "int64", "uint", "float64", "count":
		return f.DefValue == "0"
	case "stringSlice", "stringArray":
		return f.DefValue == "[]"
	default:
		return f.DefValue == ""
	}
}

func formatDefault(f *pflag.Flag) string {
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

// hasEnvironment reports whether cmd reads PEPDIGEST_* variables.
func hasEnvironment(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "digest", "config":
		return true
	}
	return false
}

// environmentRows lists the PEPDIGEST_* variables with their descriptions.
func environmentRows(theme helpTheme) []string {
	descriptions := configloader.ListEnvVars()
	names := configloader.EnvVarNames()

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	rows := make([]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, "  "+theme.flag.Render(rpad(name, width))+"   "+descriptions[name])
	}
	return rows
}

// rpad pads s with spaces to width.
func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// trimTrailingWhitespaces strips trailing blanks from every line.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
