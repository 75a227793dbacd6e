package logging

import (
	"io"
	"log/slog"
	"strings"

	"detectivequest/internal/errors"
)

var ErrInvalidLevel = errors.NewSentinel("invalid log level")

// ParseLevel maps debug, info, warn and error to their [slog.Level]. Matching is case-insensitive.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, errors.Wrap(ErrInvalidLevel, "parse level", slog.String("level", s))
	}
	return level, nil
}

// New creates a text logger writing to w that understands attributes added with [WithAttrs].
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}
