package observability

import (
	"context"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request id to clients and backends.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// WithRequestID attaches id to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached to ctx, or "" when there is none.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// NewRequestID returns a random id.
func NewRequestID() string {
	return uuid.NewString()
}
