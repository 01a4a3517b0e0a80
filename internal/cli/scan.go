package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/penenv/internal/logging"
	"github.com/yaklabco/penenv/internal/ui/pretty"
	"github.com/yaklabco/penenv/pkg/config"
	"github.com/yaklabco/penenv/pkg/reporter"
	"github.com/yaklabco/penenv/pkg/runner"
)

// scanFlags holds the flags for the scan command.
type scanFlags struct {
	format         string
	jobs           int
	exclude        []string
	followSymlinks bool
}

// scanFile is one note in JSON scan output.
type scanFile struct {
	Path      string         `json:"path"`
	Spans     int            `json:"spans"`
	Blocks    int            `json:"blocks"`
	Languages []string       `json:"languages,omitempty"`
	ByTag     map[string]int `json:"byTag,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// scanOutput is the JSON scan document.
type scanOutput struct {
	Files  []scanFile `json:"files"`
	Totals struct {
		Files            int            `json:"files"`
		Errors           int            `json:"errors"`
		Spans            int            `json:"spans"`
		Blocks           int            `json:"blocks"`
		SpansByTag       map[string]int `json:"spansByTag"`
		BlocksByLanguage map[string]int `json:"blocksByLanguage"`
	} `json:"totals"`
}

func newScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Classify every note under a directory",
		Long: `Classify all markdown notes under the given files or directories in
parallel and summarize their spans and code blocks per file.

With no arguments the workspace directory is scanned. Hidden files and
directories are skipped.

Examples:
  penenv scan
  penenv scan ~/engagements --exclude 'archive/**' --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json (default from config)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = number of CPUs)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, flags *scanFlags) error {
	if flags.format != "" {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
	}

	sess, err := loadSession(cmd, &config.Config{Format: config.OutputFormat(flags.format)})
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	result, err := runner.Run(commandContext(cmd), runner.Options{
		Paths:          args,
		WorkingDir:     sess.workspace.BaseDir,
		ExcludeGlobs:   flags.exclude,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           flags.jobs,
	})
	if err != nil {
		return err
	}

	sess.logger.Debug("scanned notes",
		logging.FieldWorkspace, sess.workspace.BaseDir,
		logging.FieldSpans, result.Stats.Spans,
		logging.FieldBlocks, result.Stats.Blocks,
	)

	out := cmd.OutOrStdout()
	if format == reporter.FormatJSON {
		err = writeScanJSON(out, sess.workspace.BaseDir, result)
	} else {
		err = writeScanText(out, sess.styles(out), sess.workspace.BaseDir, result)
	}
	if err != nil {
		return err
	}

	if result.HasErrors() {
		return fmt.Errorf("%d of %d notes could not be read", result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}
	return nil
}

// displayPath shortens path relative to base when it lies below it.
func displayPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// languages returns the sorted, distinct block languages of doc.
func languages(doc *reporter.Document) []string {
	seen := make(map[string]bool)
	var langs []string
	for _, block := range doc.Blocks {
		lang := doc.Language(block)
		if !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs
}

func writeScanText(w io.Writer, styles *pretty.Styles, base string, result *runner.Result) error {
	var b strings.Builder

	for _, outcome := range result.Files {
		path := styles.FilePath.Render(displayPath(base, outcome.Path))
		if outcome.Error != nil {
			fmt.Fprintf(&b, "%s  %s\n", path, styles.Error.Render(outcome.Error.Error()))
			continue
		}

		doc := outcome.Document
		line := fmt.Sprintf("%s  %s spans  %s blocks", path,
			styles.Value.Render(fmt.Sprint(len(doc.Spans))),
			styles.Value.Render(fmt.Sprint(len(doc.Blocks))),
		)
		if langs := languages(doc); len(langs) > 0 {
			line += "  " + styles.Dim.Render(strings.Join(langs, ", "))
		}
		b.WriteString(line + "\n")
	}

	stats := result.Stats
	fmt.Fprintf(&b, "%s %d spans, %d blocks",
		styles.Title.Render(fmt.Sprintf("%d notes:", stats.FilesProcessed)),
		stats.Spans, stats.Blocks,
	)
	if stats.FilesErrored > 0 {
		b.WriteString(", " + styles.Error.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func writeScanJSON(w io.Writer, base string, result *runner.Result) error {
	output := scanOutput{Files: make([]scanFile, 0, len(result.Files))}

	for _, outcome := range result.Files {
		file := scanFile{Path: displayPath(base, outcome.Path)}
		if outcome.Error != nil {
			file.Error = outcome.Error.Error()
		} else {
			doc := outcome.Document
			file.Spans = len(doc.Spans)
			file.Blocks = len(doc.Blocks)
			file.Languages = languages(doc)
			file.ByTag = doc.CountByTag()
		}
		output.Files = append(output.Files, file)
	}

	stats := result.Stats
	output.Totals.Files = stats.FilesProcessed
	output.Totals.Errors = stats.FilesErrored
	output.Totals.Spans = stats.Spans
	output.Totals.Blocks = stats.Blocks
	output.Totals.SpansByTag = stats.SpansByTag
	output.Totals.BlocksByLanguage = stats.BlocksByLanguage

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode scan: %w", err)
	}
	return nil
}
