// Package notebuf hosts an editable markdown note backed by a file.
//
// Every mutation reclassifies the full text synchronously, so Spans always
// matches Text. Persistence is deferred: the file is written once the
// buffer has been quiet for the debounce interval, or immediately on Flush
// and Close.
package notebuf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/penenv/pkg/fsutil"
	"github.com/yaklabco/penenv/pkg/highlight"
)

// DefaultDebounce is the quiet period before an edited buffer is saved.
const DefaultDebounce = 500 * time.Millisecond

var (
	// ErrClosed is returned when mutating a closed buffer.
	ErrClosed = errors.New("buffer closed")

	// ErrOffset is returned when an insert offset lies outside the text.
	ErrOffset = errors.New("offset out of range")
)

// ChangeFunc receives the text and its fresh span set after each mutation.
type ChangeFunc func(text string, spans []highlight.Span)

// SaveFunc is called after every save attempt.
type SaveFunc func(path string, err error)

// Options configures a Buffer.
type Options struct {
	// Debounce is the quiet period before saving. Zero means DefaultDebounce.
	Debounce time.Duration

	// Mode is the file mode for written notes. Zero keeps fsutil's default.
	Mode os.FileMode

	// Logger receives save failures and external-modification warnings.
	// Nil means the charmbracelet/log default logger.
	Logger *log.Logger

	OnChange ChangeFunc
	OnSave   SaveFunc
}

// Buffer is a note held in memory and persisted to Path.
// It is safe for concurrent use.
type Buffer struct {
	path string
	opts Options

	mu      sync.Mutex
	text    string
	spans   []highlight.Span
	version uint64
	saved   uint64
	timer   *time.Timer
	closed  bool
	err     error

	// saveMu serializes writes; disk holds the FileInfo of the last load or save.
	saveMu sync.Mutex
	disk   *fsutil.FileInfo
}

// Open loads path into a new Buffer. A missing file starts an empty buffer
// that is created on first save.
func Open(ctx context.Context, path string, opts Options) (*Buffer, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	content, info, err := fsutil.ReadFileOrEmpty(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open note: %w", err)
	}

	text := string(content)
	return &Buffer{
		path:  path,
		opts:  opts,
		text:  text,
		spans: highlight.Classify(text),
		disk:  info,
	}, nil
}

// Path returns the backing file path.
func (b *Buffer) Path() string {
	return b.path
}

// Text returns the current text.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Spans returns a copy of the spans for the current text.
func (b *Buffer) Spans() []highlight.Span {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]highlight.Span(nil), b.spans...)
}

// Dirty reports whether the buffer has edits not yet written.
func (b *Buffer) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version != b.saved
}

// Err returns the error of the most recent failed save, cleared by the
// next successful one.
func (b *Buffer) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// SetText replaces the whole text.
func (b *Buffer) SetText(text string) error {
	return b.mutate(func(string) (string, error) { return text, nil })
}

// Append adds text at the end of the buffer.
func (b *Buffer) Append(text string) error {
	return b.mutate(func(current string) (string, error) { return current + text, nil })
}

// Insert adds text at a rune offset.
func (b *Buffer) Insert(offset int, text string) error {
	return b.mutate(func(current string) (string, error) {
		if offset < 0 || offset > utf8.RuneCountInString(current) {
			return "", fmt.Errorf("%w: %d", ErrOffset, offset)
		}
		runes := []rune(current)
		return string(runes[:offset]) + text + string(runes[offset:]), nil
	})
}

// mutate applies edit, reclassifies, rearms the save timer and notifies
// OnChange outside the lock.
func (b *Buffer) mutate(edit func(current string) (string, error)) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}

	text, err := edit(b.text)
	if err != nil {
		b.mu.Unlock()
		return err
	}

	b.text = text
	b.spans = highlight.Classify(text)
	b.version++
	b.scheduleLocked()

	var spans []highlight.Span
	if b.opts.OnChange != nil {
		spans = append(spans, b.spans...)
	}
	b.mu.Unlock()

	if b.opts.OnChange != nil {
		b.opts.OnChange(text, spans)
	}
	return nil
}

func (b *Buffer) scheduleLocked() {
	if b.timer != nil {
		b.timer.Stop()
	}

	version := b.version
	b.timer = time.AfterFunc(b.opts.Debounce, func() {
		b.mu.Lock()
		stale := b.closed || b.version != version
		if !stale {
			b.timer = nil
		}
		b.mu.Unlock()

		if stale {
			return
		}
		_ = b.save(context.Background())
	})
}

func (b *Buffer) stopTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// Flush cancels any pending debounced save and writes now if dirty.
func (b *Buffer) Flush(ctx context.Context) error {
	b.mu.Lock()
	b.stopTimerLocked()
	b.mu.Unlock()

	return b.save(ctx)
}

// Close flushes pending edits and rejects further mutation.
// Closing twice is a no-op.
func (b *Buffer) Close(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.stopTimerLocked()
	b.mu.Unlock()

	return b.save(ctx)
}

// Reload replaces the text with the file content when the buffer has no
// unsaved edits and the file changed on disk. It reports whether the text
// was replaced.
func (b *Buffer) Reload(ctx context.Context) (bool, error) {
	b.saveMu.Lock()
	defer b.saveMu.Unlock()

	if b.disk != nil {
		modified, err := fsutil.CheckModified(ctx, b.disk)
		if err != nil {
			return false, fmt.Errorf("reload note: %w", err)
		}
		if !modified {
			return false, nil
		}
	}

	content, info, err := fsutil.ReadFileOrEmpty(ctx, b.path)
	if err != nil {
		return false, fmt.Errorf("reload note: %w", err)
	}

	b.mu.Lock()
	if b.closed || b.version != b.saved {
		b.mu.Unlock()
		return false, nil
	}
	text := string(content)
	changed := text != b.text
	b.text = text
	b.spans = highlight.Classify(text)
	var spans []highlight.Span
	if changed && b.opts.OnChange != nil {
		spans = append(spans, b.spans...)
	}
	b.mu.Unlock()

	b.disk = info
	if changed && b.opts.OnChange != nil {
		b.opts.OnChange(text, spans)
	}
	return changed, nil
}

// save writes the current text when it differs from the last saved version.
func (b *Buffer) save(ctx context.Context) error {
	b.saveMu.Lock()
	defer b.saveMu.Unlock()

	b.mu.Lock()
	if b.version == b.saved {
		b.mu.Unlock()
		return nil
	}
	text := b.text
	version := b.version
	b.mu.Unlock()

	logger := b.opts.Logger
	if b.disk != nil {
		if modified, err := fsutil.CheckModified(ctx, b.disk); err == nil && modified {
			logger.Warn("note changed on disk since load; overwriting", "path", b.path)
		}
	}

	content := []byte(text)
	err := fsutil.WriteAtomic(ctx, b.path, content, b.opts.Mode)
	if err == nil {
		b.disk, err = fsutil.Stat(b.path, content)
	}

	b.mu.Lock()
	if err != nil {
		b.err = fmt.Errorf("save note: %w", err)
		err = b.err
	} else {
		b.err = nil
		b.saved = version
	}
	b.mu.Unlock()

	if err != nil {
		logger.Error("save failed", "path", b.path, "error", err)
	} else {
		logger.Debug("note saved", "path", b.path, "bytes", len(content))
	}
	if b.opts.OnSave != nil {
		b.opts.OnSave(b.path, err)
	}
	return err
}
