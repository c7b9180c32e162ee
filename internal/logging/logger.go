// Package logging defines the structured-logging interface used across
// pmdadmin and its slog and zap backends.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "catalog fetched", "kind", "documents", "count", n)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}

// New builds a Logger writing to stdout. format is one of "json", "text"
// or "zap"; anything else falls back to json.
func New(format string) (Logger, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "zap":
		return NewZapLogger(true)
	case "zap-dev":
		return NewZapLogger(false)
	case "text":
		return NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil))), nil
	case "", "json":
		return NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil))), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
