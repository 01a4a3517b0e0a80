package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/penenv/internal/ui/pretty"
)

// Command groups shown in root help.
const (
	groupNotes     = "notes"
	groupWorkspace = "workspace"
	groupSetup     = "setup"
)

func commandGroups() []*cobra.Group {
	return []*cobra.Group{
		{ID: groupNotes, Title: "Notes:"},
		{ID: groupWorkspace, Title: "Workspace:"},
		{ID: groupSetup, Title: "Setup:"},
	}
}

// installHelp replaces cobra's template help with a renderer that shares
// the pretty styles used by the rest of the CLI.
func installHelp(root *cobra.Command) {
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		styles := flagStyles(cmd)
		out := cmd.OutOrStdout()

		header := cmd.CommandPath()
		if cmd.Version != "" {
			header += " " + styles.Dim.Render(cmd.Version)
		}
		fmt.Fprintln(out, styles.Title.Render(header))
		fmt.Fprintln(out)

		if text := strings.TrimSpace(firstNonEmpty(cmd.Long, cmd.Short)); text != "" {
			fmt.Fprintln(out, text)
			fmt.Fprintln(out)
		}
		writeUsage(out, cmd, styles)
	})

	root.SetUsageFunc(func(cmd *cobra.Command) error {
		writeUsage(cmd.OutOrStderr(), cmd, flagStyles(cmd))
		return nil
	})
}

func writeUsage(out io.Writer, cmd *cobra.Command, styles *pretty.Styles) {
	section := func(title string) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, styles.Warning.Render(title))
	}

	fmt.Fprintln(out, styles.Warning.Render("Usage:"))
	if cmd.Runnable() {
		fmt.Fprintln(out, "  "+styles.Bold.Render(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(out, "  "+styles.Bold.Render(cmd.CommandPath()+" [command]"))
	}

	if len(cmd.Aliases) > 0 {
		section("Aliases:")
		fmt.Fprintln(out, "  "+styles.Dim.Render(strings.Join(cmd.Aliases, ", ")))
	}

	if cmd.HasExample() {
		section("Examples:")
		fmt.Fprintln(out, styles.Dim.Render(cmd.Example))
	}

	if cmd.HasAvailableSubCommands() {
		writeSubcommands(out, cmd, styles, section)
	}

	if cmd.HasAvailableLocalFlags() {
		section("Flags:")
		fmt.Fprintln(out, styleFlags(cmd.LocalFlags(), styles))
	}
	if cmd.HasAvailableInheritedFlags() {
		section("Global Flags:")
		fmt.Fprintln(out, styleFlags(cmd.InheritedFlags(), styles))
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Use %q for more information about a command.\n",
			cmd.CommandPath()+" [command] --help")
	}
}

// writeSubcommands lists children under their group titles; ungrouped
// commands land in a trailing "Commands:" section.
func writeSubcommands(out io.Writer, cmd *cobra.Command, styles *pretty.Styles, section func(string)) {
	width := 0
	for _, child := range cmd.Commands() {
		if child.IsAvailableCommand() && len(child.Name()) > width {
			width = len(child.Name())
		}
	}

	list := func(groupID string) bool {
		printed := false
		for _, child := range cmd.Commands() {
			if !child.IsAvailableCommand() || child.GroupID != groupID {
				continue
			}
			fmt.Fprintf(out, "  %s  %s\n",
				styles.Success.Render(fmt.Sprintf("%-*s", width, child.Name())), child.Short)
			printed = true
		}
		return printed
	}

	for _, group := range cmd.Groups() {
		if hasGroupMembers(cmd, group.ID) {
			section(group.Title)
			list(group.ID)
		}
	}
	if hasGroupMembers(cmd, "") {
		title := "Commands:"
		if len(cmd.Groups()) == 0 {
			title = "Available Commands:"
		}
		section(title)
		list("")
	}
}

func hasGroupMembers(cmd *cobra.Command, groupID string) bool {
	for _, child := range cmd.Commands() {
		if child.IsAvailableCommand() && child.GroupID == groupID {
			return true
		}
	}
	return false
}

// styleFlags colors the flag names in pflag's usage block and leaves the
// column layout alone.
func styleFlags(flags *pflag.FlagSet, styles *pretty.Styles) string {
	lines := strings.Split(strings.TrimRight(flags.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		names, rest, ok := cutFlagColumn(line)
		if !ok {
			continue
		}
		var styled []string
		for _, token := range strings.Fields(names) {
			if strings.HasPrefix(token, "-") {
				comma := strings.HasSuffix(token, ",")
				token = styles.Location.Render(strings.TrimSuffix(token, ","))
				if comma {
					token += ","
				}
			} else {
				token = styles.Dim.Render(token)
			}
			styled = append(styled, token)
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
		lines[i] = indent + strings.Join(styled, " ") + "   " + rest
	}
	return strings.Join(lines, "\n")
}

// cutFlagColumn splits "  -f, --flag type   description" at the first run
// of two or more spaces after the names.
func cutFlagColumn(line string) (names, rest string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return "", "", false
	}
	idx := strings.Index(trimmed, "  ")
	if idx < 0 {
		return "", "", false
	}
	return trimmed[:idx], strings.TrimLeft(trimmed[idx:], " "), true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
