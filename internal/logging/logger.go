// Package logging builds the charmbracelet/log loggers used across penenv
// and carries them through contexts.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// EnvLevel sets the initial level of the default logger.
const EnvLevel = "PENENV_LOG_LEVEL"

//nolint:gochecknoglobals // Process-wide default logger.
var (
	defaultLogger atomic.Pointer[log.Logger]
	initDefault   sync.Once
)

// New returns a stderr logger at level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger writing to w at level. Unknown levels
// mean info.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: parseLevel(level)})
}

func parseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil || level == "" {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the process-wide logger, created on first use at the
// level named by PENENV_LOG_LEVEL.
func Default() *log.Logger {
	initDefault.Do(func() {
		defaultLogger.CompareAndSwap(nil, New(os.Getenv(EnvLevel)))
	})
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	Default()
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}
