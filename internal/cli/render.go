package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/penenv/internal/logging"
	"github.com/yaklabco/penenv/internal/ui/pretty"
	"github.com/yaklabco/penenv/pkg/highlight"
	"github.com/yaklabco/penenv/pkg/notebuf"
)

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// renderFlags holds the flags for the render command.
type renderFlags struct {
	watch bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Paint a note with markdown highlighting",
		Long: `Print a note with its spans painted in the terminal.

With no argument the workspace notes.md is rendered; "-" reads standard
input. With --watch the file is repainted whenever it changes on disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "repaint when the file changes")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	sess, err := loadSession(cmd, nil)
	if err != nil {
		return err
	}

	if flags.watch {
		if len(args) > 0 && args[0] == stdinArg {
			return fmt.Errorf("%w: --watch needs a file, not stdin", ErrInvalidUsage)
		}
		return sess.watch(cmd, args)
	}

	path, text, err := sess.readNote(cmd, args)
	if err != nil {
		return err
	}

	spans := highlight.Classify(text)
	sess.logger.Debug("rendering note", logging.FieldPath, path, logging.FieldSpans, len(spans))

	return writePainted(cmd.OutOrStdout(), text, spans, sess.theme(cmd.OutOrStdout()))
}

// theme builds the span theme for w from the session's color mode and overrides.
func (s *session) theme(w io.Writer) *pretty.Theme {
	return pretty.NewTheme(w, pretty.IsColorEnabled(s.cfg.Color, w), s.cfg.Theme)
}

// styles builds the CLI chrome styles for w.
func (s *session) styles(w io.Writer) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(s.cfg.Color, w))
}

// writePainted writes the painted text, ending it with a newline.
func writePainted(w io.Writer, text string, spans []highlight.Span, theme *pretty.Theme) error {
	painted := pretty.Paint(text, spans, theme)
	if text != "" && !strings.HasSuffix(text, "\n") {
		painted += "\n"
	}
	if _, err := io.WriteString(w, painted); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// watch paints the note, then repaints on every change until the command
// context is cancelled.
func (s *session) watch(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()
	theme := s.theme(out)

	path := s.workspace.NotesPath()
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve %s: %w", args[0], err)
		}
		path = abs
	}

	var outMu sync.Mutex
	paint := func(text string, spans []highlight.Span) {
		outMu.Lock()
		defer outMu.Unlock()

		if theme.Enabled() {
			_, _ = io.WriteString(out, clearScreen)
		}
		if err := writePainted(out, text, spans, theme); err != nil {
			s.logger.Warn("repaint failed", logging.FieldError, err)
		}
	}

	debounce, err := s.cfg.DebounceDuration()
	if err != nil {
		return err
	}

	buf, err := notebuf.Open(ctx, path, notebuf.Options{
		Debounce: debounce,
		Logger:   s.logger,
		OnChange: paint,
	})
	if err != nil {
		return err
	}
	defer func() { _ = buf.Close(ctx) }()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file are followed.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	paint(buf.Text(), buf.Spans())
	s.logger.Debug("watching note", logging.FieldPath, path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if _, err := buf.Reload(ctx); err != nil {
				s.logger.Warn("reload failed", logging.FieldPath, path, logging.FieldError, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", logging.FieldError, err)
		}
	}
}
