package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan starts a span for one unit of work, usually one input line.
// A span already carried by ctx becomes the parent.
type NewSpan func(ctx context.Context, label string) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, label string) (context.Context, Span) {
		var parent Span
		if v := ctx.Value(SpanKey); v != nil {
			parent = v.(Span)
		}

		span := Span(rand.Text()[:12])
		ctx = context.WithValue(ctx, SpanKey, span)

		args := []any{"label", label}
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.DebugContext(ctx, "new span", args...)

		return ctx, span
	}
}

// WithSession tags every record logged with ctx with the session id.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionKey, id)
}
