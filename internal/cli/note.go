package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/penenv/internal/logging"
	"github.com/yaklabco/penenv/pkg/highlight"
	"github.com/yaklabco/penenv/pkg/notebuf"
	"github.com/yaklabco/penenv/pkg/workspace"
)

// noteAddFlags holds the flags for the note add command.
type noteAddFlags struct {
	stamp       bool
	target      int
	lastCommand bool
}

// nowFunc is replaced in tests.
//
//nolint:gochecknoglobals // Test seam for timestamps.
var nowFunc = time.Now

func newNoteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Work with the workspace notes",
	}

	cmd.AddCommand(newNoteAddCommand())
	cmd.AddCommand(newNoteShowCommand())

	return cmd
}

func newNoteAddCommand() *cobra.Command {
	flags := &noteAddFlags{}

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Append a line to notes.md",
		Long: `Append a line to the workspace notes.md.

The line can be prefixed with a timestamp, a target from targets.txt
(numbered from 1 as listed by "penenv targets") and the last command from
commands.log, each wrapped as inline code. Text starting with "-", such
as a list item, goes after "--" so it is not read as a flag.

Examples:
  penenv note add --stamp "## Initial foothold"
  penenv note add --target 2 -- "- ssh open, password auth enabled"
  penenv note add --last-command -- "- found creds with this"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNoteAdd(cmd, args, flags)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w (put note text starting with \"-\" after \"--\")", ErrInvalidUsage, err)
	})

	cmd.Flags().BoolVarP(&flags.stamp, "stamp", "s", false, "prefix the line with a timestamp")
	cmd.Flags().IntVarP(&flags.target, "target", "t", 0, "include target N from targets.txt")
	cmd.Flags().BoolVarP(&flags.lastCommand, "last-command", "l", false,
		"include the last command from commands.log")

	return cmd
}

func runNoteAdd(cmd *cobra.Command, args []string, flags *noteAddFlags) error {
	ctx := commandContext(cmd)

	sess, err := loadSession(cmd, nil)
	if err != nil {
		return err
	}

	var parts []string

	if flags.target != 0 {
		targets, err := sess.workspace.Targets(ctx)
		if err != nil {
			return err
		}
		if flags.target < 1 || flags.target > len(targets) {
			return fmt.Errorf("%w: target %d out of range (have %d)", ErrInvalidUsage, flags.target, len(targets))
		}
		parts = append(parts, "`"+strings.TrimSpace(targets[flags.target-1])+"`")
	}

	if flags.lastCommand {
		entries, err := sess.workspace.Commands(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("%w: command log %s is empty", ErrInvalidUsage, sess.workspace.CommandLogPath())
		}
		parts = append(parts, "`"+entries[len(entries)-1].Command+"`")
	}

	if text := strings.Join(args, " "); text != "" {
		parts = append(parts, text)
	}

	if len(parts) == 0 {
		return fmt.Errorf("%w: nothing to add", ErrInvalidUsage)
	}

	line := strings.Join(parts, " ")
	if flags.stamp {
		line = workspace.Stamp(nowFunc()) + line
	}

	if err := sess.workspace.Ensure(ctx); err != nil {
		return err
	}

	debounce, err := sess.cfg.DebounceDuration()
	if err != nil {
		return err
	}

	buf, err := notebuf.Open(ctx, sess.workspace.NotesPath(), notebuf.Options{
		Debounce: debounce,
		Logger:   sess.logger,
	})
	if err != nil {
		return err
	}

	text := buf.Text()
	if text != "" && !strings.HasSuffix(text, "\n") {
		line = "\n" + line
	}

	if err := buf.Append(line + "\n"); err != nil {
		_ = buf.Close(ctx)
		return err
	}

	// Close flushes the pending debounced save.
	if err := buf.Close(ctx); err != nil {
		return err
	}

	spans := highlight.Classify(strings.TrimPrefix(line, "\n"))
	sess.logger.Info("note added", logging.FieldPath, buf.Path(), logging.FieldSpans, len(spans))
	return nil
}

func newNoteShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Render notes.md with highlighting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, nil, &renderFlags{})
		},
	}
}

func newTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List targets from targets.txt",
		Long: `List the targets of the workspace, numbered from 1.

Blank lines and lines starting with '#' in targets.txt are skipped.`,
		Args: cobra.NoArgs,
		RunE: runTargets,
	}
}

func runTargets(cmd *cobra.Command, _ []string) error {
	sess, err := loadSession(cmd, nil)
	if err != nil {
		return err
	}

	targets, err := sess.workspace.Targets(commandContext(cmd))
	if err != nil {
		return err
	}

	sess.logger.Debug("loaded targets", logging.FieldTargets, len(targets))

	out := cmd.OutOrStdout()
	styles := sess.styles(out)
	if len(targets) == 0 {
		fmt.Fprintln(out, styles.Dim.Render("No targets in "+sess.workspace.TargetsPath()))
		return nil
	}

	width := len(strconv.Itoa(len(targets)))
	for idx, target := range targets {
		fmt.Fprintf(out, "%s  %s\n",
			styles.Location.Render(fmt.Sprintf("%*d", width, idx+1)),
			styles.Value.Render(target),
		)
	}
	return nil
}
