package observability

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type tracerOptions struct {
	sync bool
}

// A TracerOption configures InitTracer.
type TracerOption func(*tracerOptions)

// WithSyncExport exports each span as it ends instead of batching. Use it
// where the process can be frozen between requests.
func WithSyncExport() TracerOption {
	return func(o *tracerOptions) { o.sync = true }
}

// InitTracer installs a global tracer provider that exports spans to w and
// returns its shutdown func.
func InitTracer(serviceName string, w io.Writer, opts ...TracerOption) (func(context.Context) error, error) {
	var o tracerOptions
	for _, opt := range opts {
		opt(&o)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	export := sdktrace.WithBatcher(exporter)
	if o.sync {
		export = sdktrace.WithSyncer(exporter)
	}

	tp := sdktrace.NewTracerProvider(
		export,
		sdktrace.WithResource(resource.NewWithAttributes(
			"", // schema URL (empty string for default)
			attribute.String("service.name", serviceName),
		)),
	)

	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
