// Package logging owns the process logger. Everything goes to stderr so the
// launched tool keeps stdout to itself.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

var (
	level  = new(slog.LevelVar)
	logger = New(os.Stderr, level)
)

func init() {
	level.Set(slog.LevelWarn)
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	return logger
}

// SetLevel changes the level of the process logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// New builds a logger for w. Terminals get the colored tint handler, anything
// else gets plain slog text.
func New(w io.Writer, leveler slog.Leveler) *slog.Logger {
	if isTerminal(w) {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      leveler,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: leveler}))
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
