// Package logging builds the zerolog logger used for a conversion run.
//
// Console output goes to stderr in human-readable form by default, or as JSON
// lines. When a file is configured, JSON lines are also written to a rotated
// file through lumberjack. Every line carries the run's xid.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// RunIDField is the key of the per-run identifier.
const RunIDField = "run_id"

var ErrInvalidFormat = errors.New("invalid log format")

// Options configures New.
type Options struct {
	Level  string // debug, info, warn, error (empty = info)
	Format string // console, json (empty = console)

	File       string // rotated JSON log file, empty = none
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	Out   io.Writer // console destination, nil = os.Stderr
	RunID string    // empty = new xid
	Color bool      // colorize console output
}

// Logger is a run logger and the resources it holds.
type Logger struct {
	zerolog.Logger
	RunID string
	file  *lumberjack.Logger
}

// New builds a logger from opts.
func New(opts Options) (*Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		var err error
		if level, err = zerolog.ParseLevel(strings.ToLower(opts.Level)); err != nil {
			return nil, fmt.Errorf("parsing log level %q: %w", opts.Level, err)
		}
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var console io.Writer
	switch strings.ToLower(opts.Format) {
	case "", FormatConsole:
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: !opts.Color}
	case FormatJSON:
		console = out
	default:
		return nil, fmt.Errorf("%w: %q (must be console or json)", ErrInvalidFormat, opts.Format)
	}

	l := &Logger{RunID: opts.RunID}
	if l.RunID == "" {
		l.RunID = xid.New().String()
	}

	w := console
	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		w = zerolog.MultiLevelWriter(console, l.file)
	}

	l.Logger = zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str(RunIDField, l.RunID).
		Logger()
	return l, nil
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
