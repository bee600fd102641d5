package backdrop

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Logger returns the package logger.
func Logger() *slog.Logger {
	return logger
}

// SetLogger replaces the package logger. A nil logger discards output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = l
}

// NewLogger builds a text logger writing to w at the named level
// ("debug", "info", "warn", "error"). Unknown names fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// drawStats holds per-frame counters. Only populated in debug mode.
type drawStats struct {
	elapsed        time.Duration
	nodes          int
	drawCalls      int
	frameCallbacks int
	tweens         int
	pending        int
}

func (s *Scene) debugLog(stats drawStats) {
	if !s.debug {
		return
	}
	logger.Debug("[backdrop] frame",
		"draw", stats.elapsed,
		"nodes", stats.nodes,
		"drawCalls", stats.drawCalls,
		"frameCallbacks", stats.frameCallbacks,
		"tweens", stats.tweens,
		"pending", stats.pending,
	)
}
