package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rs/zerolog"
)

// Supported output formats.
const (
	FormatConsole = "console"
	FormatText    = "text"
	FormatJSON    = "json"
)

// Options selects the backend and verbosity of the logger built by New.
type Options struct {
	Format  string
	Verbose bool
	Out     io.Writer // defaults to os.Stderr
	Color   bool      // console format only
}

// New builds a Logger. Console output goes through zerolog's ConsoleWriter,
// text and json through slog handlers.
func New(o Options) (Logger, error) {
	out := o.Out
	if out == nil {
		out = os.Stderr
	}

	switch o.Format {
	case "", FormatConsole:
		lvl := zerolog.InfoLevel
		if o.Verbose {
			lvl = zerolog.DebugLevel
		}
		w := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "2006-01-02 15:04:05",
			NoColor:    !o.Color,
		}
		return NewZerologLogger(zerolog.New(w).Level(lvl).With().Timestamp().Logger()), nil

	case FormatText, FormatJSON:
		lvl := slog.LevelInfo
		if o.Verbose {
			lvl = slog.LevelDebug
		}
		opts := &slog.HandlerOptions{Level: lvl}
		var h slog.Handler
		if o.Format == FormatJSON {
			h = slog.NewJSONHandler(out, opts)
		} else {
			h = slog.NewTextHandler(out, opts)
		}
		return NewSlogLogger(slog.New(h)), nil

	default:
		return nil, fmt.Errorf("unknown log format %q", o.Format)
	}
}
