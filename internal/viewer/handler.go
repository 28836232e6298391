// Package viewer adapts the path rewriter to the edge platform's
// viewer-request invocation contract.
package viewer

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/CSroseX/edge-path-rewriter/internal/observability"
	"github.com/CSroseX/edge-path-rewriter/internal/rewrite"
)

var (
	// ErrNoRecords is returned when the event carries no request record.
	ErrNoRecords = errors.New("viewer: event has no records")
	// ErrMissingHost is returned when the request has no host header.
	ErrMissingHost = errors.New("viewer: request has no host header")
)

// A Handler rewrites the uri of viewer requests.
type Handler struct {
	log    *zap.Logger
	tracer trace.Tracer
}

// An Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler's logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithTracer sets the tracer used for invocation spans.
func WithTracer(t trace.Tracer) Option {
	return func(h *Handler) {
		if t != nil {
			h.tracer = t
		}
	}
}

// NewHandler returns a Handler. Without options it logs nothing and traces
// through the global tracer provider.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		log:    zap.NewNop(),
		tracer: otel.Tracer("edge-path-rewriter/viewer"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle rewrites the first record's request uri and returns the request.
func (h *Handler) Handle(ctx context.Context, event Event) (Request, error) {
	if len(event.Records) == 0 {
		return Request{}, ErrNoRecords
	}
	req := event.Records[0].CF.Request

	host, ok := req.Host()
	if !ok {
		return Request{}, ErrMissingHost
	}

	_, span := h.tracer.Start(ctx, "viewer-request", trace.WithAttributes(
		attribute.String("http.host", host),
		attribute.String("url.path", req.URI),
	))
	defer span.End()

	log := h.log.With(zap.String("requestID", requestID(ctx)))
	log.Info("processing viewer request", zap.String("host", host), zap.String("uri", req.URI))

	d := rewrite.Decide(host, req.URI)
	switch d.Rule {
	case rewrite.RuleApp:
		log.Debug("app path, deferring to backend behavior", zap.String("uri", req.URI))
	case rewrite.RuleNotFound:
		log.Debug("unknown path, serving not found page", zap.String("uri", req.URI))
	}
	req.URI = d.URI

	span.SetAttributes(
		attribute.String("edge.rewritten_uri", d.URI),
		attribute.String("edge.rule", string(d.Rule)),
	)
	log.Info("final uri", zap.String("host", host), zap.String("uri", req.URI))
	return req, nil
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return observability.NewRequestID()
}
