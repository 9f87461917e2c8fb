package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

var configureOnce sync.Once

// Options controls logger construction.
type Options struct {
	// Verbose selects debug level; Quiet selects warn level. Info otherwise.
	Verbose bool
	Quiet   bool

	// Console receives human-facing output. Defaults to os.Stderr.
	Console io.Writer

	// File enables a rotating JSON log file when non-empty.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// Level returns the level selected by the verbosity flags.
func (o Options) Level() zerolog.Level {
	switch {
	case o.Verbose:
		return zerolog.DebugLevel
	case o.Quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger from opts. The returned closer releases the log file,
// if one was opened, and must be called on shutdown.
//
// Console output is colorized when it is a terminal and JSON otherwise.
// Every writer is wrapped in a FilteringWriter.
func New(opts Options) (zerolog.Logger, io.Closer) {
	configureOnce.Do(func() {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	})

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	var out io.Writer = NewFilteringWriter(console)
	if isTerminal(console) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}
		closer = file
		out = zerolog.MultiLevelWriter(out, NewFilteringWriter(file))
	}

	logger := zerolog.New(out).Level(opts.Level()).With().Timestamp().Logger()
	return logger, closer
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
