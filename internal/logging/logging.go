// Package logging builds the leveled stderr logger shared by commands and the widget.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is printed before every log line.
const Prefix = "todo"

// Options holds logger settings.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json, logfmt
	Debug  bool   // forces debug level
	Quiet  bool   // raises the level to error
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	level := ParseLevel(opts.Level)
	if opts.Quiet && level < log.ErrorLevel {
		level = log.ErrorLevel
	}
	if opts.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:     level,
		Formatter: ParseFormatter(opts.Format),
		Prefix:    Prefix,
	})
}

// ParseLevel parses a level name. Unknown names mean warn.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormatter parses a formatter name. Unknown names mean text.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
