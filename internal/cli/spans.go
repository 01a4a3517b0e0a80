package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/penenv/internal/logging"
	"github.com/yaklabco/penenv/pkg/config"
	"github.com/yaklabco/penenv/pkg/reporter"
)

// spansFlags holds the flags for the spans command.
type spansFlags struct {
	format    string
	compact   bool
	noSummary bool
}

func newSpansCommand() *cobra.Command {
	flags := &spansFlags{}

	cmd := &cobra.Command{
		Use:   "spans [file|-]",
		Short: "List the highlight spans of a note",
		Long: `Classify a note and list its spans with line and column positions.

With no argument the workspace notes.md is read; "-" reads standard input.
JSON output also lists fenced code blocks with their detected language.

Examples:
  penenv spans                     List spans of the workspace notes
  penenv spans report.md           List spans of another file
  cat draft.md | penenv spans - --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpans(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json (default from config)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the per-tag summary")

	return cmd
}

func runSpans(cmd *cobra.Command, args []string, flags *spansFlags) error {
	if flags.format != "" {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
	}

	cliCfg := &config.Config{Format: config.OutputFormat(flags.format)}
	sess, err := loadSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	path, text, err := sess.readNote(cmd, args)
	if err != nil {
		return err
	}

	doc := reporter.Analyze(path, text)
	sess.logger.Debug("classified note",
		logging.FieldPath, path,
		logging.FieldSpans, len(doc.Spans),
		logging.FieldBlocks, len(doc.Blocks),
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       sess.cfg.Color,
		Theme:       sess.cfg.Theme,
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(commandContext(cmd), doc); err != nil {
		return fmt.Errorf("report spans: %w", err)
	}

	return nil
}
