// Package log provides the structured logging setup shared by gokrige
// tools and examples. Logs are emitted as JSON via log/slog, with
// stacktraces extracted from cockroachdb/errors error values.
package log

import (
	"log/slog"
	"os"
)

const (
	// ErrAttrKey is the attribute key under which errors are logged.
	ErrAttrKey = "error"
	// StacktraceAttrKey is the attribute key for extracted stacktraces.
	StacktraceAttrKey = "stacktrace"
)

// Setup installs the default gokrige slog logger: a JSON handler on
// stdout wrapped so that error attributes carry their stacktrace.
func Setup(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// ToLogLevel maps a level name to a slog.Level. Unknown names map to
// info.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
