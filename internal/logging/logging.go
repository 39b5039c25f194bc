// Package logging builds the slog logger used for diagnostic output.
// User-facing import progress goes through the import session instead.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{
		Level:       parseLevel(opts.Level),
		ReplaceAttr: replaceAttr,
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console", "text":
		return slog.New(slog.NewTextHandler(out, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(out, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
		}
	case slog.LevelKey:
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	}
	return attr
}
