package logging

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger = newDefault()
)

func newDefault() *slog.Logger {
	return slog.New(clog.New(
		clog.WithLevel(slog.LevelInfo),
		clog.WithReplaceAttr(masq.New(masq.WithTag("secret"))),
	))
}

// Default returns the process-wide logger.
func Default() *slog.Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *slog.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
	slog.SetDefault(logger)
}

// Format is the output format of the logger.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// New builds a logger writing to w. The masq filter drops any field tagged
// `masq:"secret"`, which covers OAuth tokens and client secrets.
func New(w io.Writer, level slog.Level, format Format) (*slog.Logger, error) {
	filter := masq.New(masq.WithTag("secret"))

	switch format {
	case FormatConsole:
		return slog.New(clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
		)), nil

	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: filter,
		})), nil

	default:
		return nil, goerr.New("unknown log format", goerr.V("format", format))
	}
}

type ctxLoggerKey struct{}

// With binds a logger to the context.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger bound to the context, or the default logger.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
