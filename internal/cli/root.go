// Package cli provides the Cobra command structure for penenv.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/penenv/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root penenv command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var dir string

	rootCmd := &cobra.Command{
		Use:   "penenv",
		Short: "Session notes and markdown highlighting for penetration tests",
		Long: `penenv keeps the notes of a penetration testing session in a workspace
directory: notes.md for findings, targets.txt for hosts in scope.

Notes are classified into markdown spans (headers, emphasis, inline code,
fenced blocks, links, list markers and quotes) that are painted in the
terminal, listed as text or JSON, or exported to HTML.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "C", "", "workspace directory (overrides config)")

	rootCmd.AddGroup(commandGroups()...)
	rootCmd.SetHelpCommandGroupID(groupSetup)
	rootCmd.SetCompletionCommandGroupID(groupSetup)

	grouped := []struct {
		group string
		cmds  []*cobra.Command
	}{
		{groupNotes, []*cobra.Command{
			newSpansCommand(), newRenderCommand(), newNoteCommand(), newExportCommand(), newScanCommand(),
		}},
		{groupWorkspace, []*cobra.Command{newTargetsCommand(), newLogCommand(), newHookCommand()}},
		{groupSetup, []*cobra.Command{newInitCommand(), newConfigCommand(), newVersionCommand(info)}},
	}
	for _, entry := range grouped {
		for _, cmd := range entry.cmds {
			cmd.GroupID = entry.group
			rootCmd.AddCommand(cmd)
		}
	}

	installHelp(rootCmd)

	return rootCmd
}
