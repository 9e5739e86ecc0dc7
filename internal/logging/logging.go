// Package logging builds the leveled logger shared by the store and the CLI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much is logged.
type Options struct {
	Level  string
	File   string // rotate into this file instead of writing to Stderr
	Stderr io.Writer
}

// Rotation limits for File.
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// ParseLevel maps a config value to a log level; empty or unknown is info.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New returns the logger and a closer for the log file, if any.
func New(opts Options) (*log.Logger, io.Closer, error) {
	var w io.Writer = opts.Stderr
	var closer io.Closer = nopCloser{}
	formatter := log.TextFormatter
	timestamps := false

	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		w, closer = lj, lj
		formatter = log.LogfmtFormatter
		timestamps = true
	}
	if w == nil {
		return nil, nil, fmt.Errorf("logging: no output configured")
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       formatter,
		ReportTimestamp: timestamps,
		Prefix:          "todo",
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
