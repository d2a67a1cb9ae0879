// Package logging defines the structured logger used by brokerdesk packages.
// The production implementation is backed by zap; the "text" encoding uses a
// slog handler instead.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are key-value pairs:
//
//	log.Info(ctx, "request finished", "method", "GET", "status", 200)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// ContextWithRequestID attaches a request id to ctx so that loggers can tag
// every line written while serving that request.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// New builds the logger named by cfg.Encoding and returns it with a flush
// function for shutdown.
func New(cfg Config) (Logger, func() error) {
	if cfg.Encoding == "text" {
		return NewSlogText(cfg), func() error { return nil }
	}
	z := NewZap(cfg)
	return z, z.Sync
}
