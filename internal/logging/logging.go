// Package logging builds the charmbracelet/log logger used across the CLI and
// TUI, and a store observer that logs changes.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"todo-cli/internal/config"
	"todo-cli/internal/model"

	"github.com/charmbracelet/log"
)

const prefix = "todo"

type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
}

func OptionsFromConfig(c config.LogConfig) Options {
	return Options{
		Level:           ParseLevel(c.Level),
		Formatter:       ParseFormatter(c.Format),
		ReportTimestamp: true,
	}
}

func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, Options{Level: log.FatalLevel})
}

// OpenFile returns a logger appending to path plus a close func. An empty
// path yields a discarding logger, for callers (the TUI) that cannot write
// to the terminal.
func OpenFile(path string, opts Options) (*log.Logger, func() error, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, opts), f.Close, nil
}

func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// ChangeObserver logs every store change at debug level.
func ChangeObserver(l *log.Logger) func(model.Change) {
	return func(c model.Change) {
		fields := []any{"kind", string(c.Kind), "item", c.ItemID}
		if c.Item != nil {
			fields = append(fields, "text", c.Item.Text)
		}
		if c.Kind == model.ChangeEditCommitted {
			fields = append(fields, "prev", c.Prev)
		}
		l.Debug("store change", fields...)
	}
}
