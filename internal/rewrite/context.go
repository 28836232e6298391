package rewrite

import "context"

type contextKey string

const decisionKey contextKey = "decision"

// WithDecision attaches d to ctx.
func WithDecision(ctx context.Context, d Decision) context.Context {
	return context.WithValue(ctx, decisionKey, d)
}

// FromContext returns the decision made for the request, if any.
func FromContext(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionKey).(Decision)
	return d, ok
}
