// Package log builds the process slog handler.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
)

const (
	JSONFormat   = "json"
	TextFormat   = "text"
	LogfmtFormat = "logfmt"
)

// CreateHandler creates a [slog.Handler] writing to stderr by strings.
func CreateHandler(logLevel, logFormat string) slog.Handler {
	return CreateHandlerWithWriter(os.Stderr, logLevel, logFormat)
}

// CreateHandlerWithWriter creates a [slog.Handler] writing to w.
func CreateHandlerWithWriter(w io.Writer, logLevel, logFormat string) slog.Handler {
	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmLevel(GetLevel(logLevel)),
		Formatter:       formatter(logFormat),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
}

// New creates a logger and makes it the slog default.
func New(logLevel, logFormat string) *slog.Logger {
	logger := slog.New(CreateHandler(logLevel, logFormat))
	slog.SetDefault(logger)
	return logger
}

func formatter(logFormat string) charmlog.Formatter {
	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return charmlog.JSONFormatter
	case LogfmtFormat:
		return charmlog.LogfmtFormatter
	default:
		return charmlog.TextFormatter
	}
}

// ParseLevel parses a level name. trace is an alias of debug.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// GetLevel is ParseLevel with unknown names mapped to info.
func GetLevel(level string) slog.Level {
	l, _ := ParseLevel(level)
	return l
}

// ValidFormat reports whether format names a supported formatter.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case JSONFormat, TextFormat, LogfmtFormat:
		return true
	default:
		return false
	}
}

func charmLevel(l slog.Level) charmlog.Level {
	switch {
	case l <= slog.LevelDebug:
		return charmlog.DebugLevel
	case l <= slog.LevelInfo:
		return charmlog.InfoLevel
	case l <= slog.LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}
