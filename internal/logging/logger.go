// Package logging configures the charmbracelet/log loggers used across pepdigest.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide logger shared by commands and the runner.
var current atomic.Pointer[log.Logger]

// ParseLevel maps a level name to a log level. Names are case-insensitive and
// "warning" is accepted for warn. Anything unrecognised is info.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	parsed, err := log.ParseLevel(name)
	if err != nil || parsed > log.ErrorLevel {
		return log.InfoLevel
	}
	return parsed
}

// New returns a stderr logger at level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger writing to w at level. Timestamps and caller
// reporting are off; pepdigest output is read by people, not collectors.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// Default returns the process-wide logger, creating an info logger on first use.
func Default() *log.Logger {
	if logger := current.Load(); logger != nil {
		return logger
	}
	current.CompareAndSwap(nil, New("info"))
	return current.Load()
}

// SetDefault replaces the process-wide logger. A nil logger is ignored.
func SetDefault(logger *log.Logger) {
	if logger != nil {
		current.Store(logger)
	}
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
