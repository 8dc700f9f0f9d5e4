// ABOUTME: Structured logging setup built on slog with the clog console handler.
// ABOUTME: Holds the process-wide logger and carries per-request loggers in context.

package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(slog.New(slog.DiscardHandler))
}

// Configure builds a console logger writing to w and installs it as default.
func Configure(w io.Writer, level string, color bool) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := slog.New(clog.New(
		clog.WithWriter(w),
		clog.WithLevel(lvl),
		clog.WithColor(color),
	))
	SetDefault(logger)
	return logger, nil
}

func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, goerr.New("unknown log level", goerr.V("level", level))
	}
}

func Default() *slog.Logger {
	return defaultLogger.Load()
}

func SetDefault(l *slog.Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

type ctxKey struct{}

func With(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the logger carried by ctx, or the default logger.
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return Default()
}

// ErrAttr renders err as a log attribute, expanding goerr values if present.
func ErrAttr(err error) slog.Attr {
	var ge *goerr.Error
	if errors.As(err, &ge) {
		attrs := []any{slog.String("message", err.Error())}
		for k, v := range ge.Values() {
			attrs = append(attrs, slog.Any(k, v))
		}
		return slog.Group("error", attrs...)
	}
	return slog.Any("error", err)
}
