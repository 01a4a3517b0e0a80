package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/penenv/pkg/workspace"
)

// logFlags holds the flags for the log command.
type logFlags struct {
	tail int
}

func newLogCommand() *cobra.Command {
	flags := &logFlags{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the command log",
		Long: `Show commands.log, the shell history captured by the prompt hook.

See "penenv hook" for enabling capture in bash.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLog(cmd, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.tail, "tail", "n", 0, "show only the last N commands")

	return cmd
}

func runLog(cmd *cobra.Command, flags *logFlags) error {
	if flags.tail < 0 {
		return fmt.Errorf("%w: --tail must not be negative", ErrInvalidUsage)
	}

	sess, err := loadSession(cmd, nil)
	if err != nil {
		return err
	}

	entries, err := sess.workspace.Commands(commandContext(cmd))
	if err != nil {
		return err
	}
	if flags.tail > 0 && len(entries) > flags.tail {
		entries = entries[len(entries)-flags.tail:]
	}

	out := cmd.OutOrStdout()
	styles := sess.styles(out)
	for _, entry := range entries {
		stamp := ""
		if !entry.Time.IsZero() {
			stamp = styles.Dim.Render(workspace.Stamp(entry.Time))
		}
		fmt.Fprintf(out, "%s%s\n", stamp, entry.Command)
	}
	return nil
}

func newHookCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hook",
		Short: "Print a bash snippet that logs commands to the workspace",
		Long: `Print an export line for bash that appends every command to the
workspace commands.log with a timestamp.

Example:
  eval "$(penenv hook)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := loadSession(cmd, nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "export PROMPT_COMMAND=%s\n", shellQuote(sess.workspace.PromptHook()))
			return err
		},
	}
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	quoted := []byte{'\''}
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			quoted = append(quoted, `'\''`...)
			continue
		}
		quoted = append(quoted, s[i])
	}
	return string(append(quoted, '\''))
}
