package logx

import (
	"context"

	"pkt.systems/pslog"
)

type contextKey int

const visitorKey contextKey = iota

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithVisitor annotates the logger with the visitor id if present.
func WithVisitor(ctx context.Context, visitorID string) pslog.Logger {
	log := pslog.Ctx(ctx)
	if visitorID == "" {
		return log
	}
	if current, ok := ctx.Value(visitorKey).(string); ok && current == visitorID {
		return log
	}
	return log.With("visitor", visitorID)
}

// ContextWithVisitor returns a context whose logger carries the visitor id.
func ContextWithVisitor(ctx context.Context, visitorID string) context.Context {
	if ctx == nil || visitorID == "" {
		return ctx
	}
	log := WithVisitor(ctx, visitorID)
	ctx = context.WithValue(ctx, visitorKey, visitorID)
	return pslog.ContextWithLogger(ctx, log)
}

// VisitorFromContext returns the visitor id stored by ContextWithVisitor.
func VisitorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(visitorKey).(string)
	return id
}
