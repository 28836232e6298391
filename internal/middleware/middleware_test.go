package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/CSroseX/edge-path-rewriter/internal/observability"
	"github.com/CSroseX/edge-path-rewriter/internal/rewrite"
	"github.com/CSroseX/edge-path-rewriter/internal/site"
)

func TestRewrite(t *testing.T) {
	tests := []struct {
		host     string
		path     string
		wantPath string
		wantRule rewrite.Rule
	}{
		{"agastyaconnect.com", "/", "/pages/welcome.html", rewrite.RuleWelcome},
		{"agastyaconnect2.com:8080", "/", "/pages/welcome-2.html", rewrite.RuleWelcome},
		{"agastyaconnect2.com", "/foo/bar", "/pages/404-2.html", rewrite.RuleNotFound},
		{"localhost:8080", "/privacy", "/pages/privacy.html", rewrite.RulePrivacy},
		{"agastyaconnect.com", "/app/dashboard", "/app/dashboard", rewrite.RuleApp},
		{"anydomain.example", "/headshots/jane.jpg", "/headshots/jane.jpg", rewrite.RuleStatic},
		{"agastyaconnect.com", "/%70rivacy", "/pages/404.html", rewrite.RuleNotFound},
		{"agastyaconnect.com", "/app/a%2Fb", "/app/a/b", rewrite.RuleApp},
	}

	for _, tt := range tests {
		t.Run(tt.host+tt.path, func(t *testing.T) {
			var gotPath string
			var gotDecision rewrite.Decision
			h := Rewrite(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotDecision, _ = rewrite.FromContext(r.Context())
			}))

			r := httptest.NewRequest(http.MethodGet, tt.path+"?q=1", nil)
			r.Host = tt.host
			h.ServeHTTP(httptest.NewRecorder(), r)

			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, tt.wantRule, gotDecision.Rule)
			assert.Equal(t, tt.path, r.URL.EscapedPath(), "caller's request must not change")
		})
	}
}

func TestLoggingCarriesDecision(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Logging(zap.New(core))(Rewrite(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})))

	r := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	r.Host = "agastyaconnect2.com"
	h.ServeHTTP(httptest.NewRecorder(), r)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/unknown", fields["path"])
	assert.Equal(t, "/pages/404-2.html", fields["uri"])
	assert.Equal(t, "not_found", fields["rule"])
	assert.Equal(t, int64(http.StatusAccepted), fields["status"])
}

func TestRewriteKeepsEscapedPassThrough(t *testing.T) {
	var got string
	h := Rewrite(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.EscapedPath()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/app/a%2Fb", nil))
	assert.Equal(t, "/app/a%2Fb", got)
}

func TestLoggingRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var seen string
	h := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = observability.RequestID(r.Context())
		assert.Equal(t, seen, r.Header.Get(observability.RequestIDHeader))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	id := rec.Header().Get(observability.RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id, seen)
	assert.Equal(t, 1, logs.FilterField(zap.String("requestID", id)).Len())

	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set(observability.RequestIDHeader, "client-7")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "client-7", rec.Header().Get(observability.RequestIDHeader))
	assert.Equal(t, "client-7", seen)
}

func TestLoggingWithoutRewrite(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Logging(zap.New(core))(http.NotFoundHandler())
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusNotFound), entries[0].ContextMap()["status"])
	assert.NotContains(t, entries[0].ContextMap(), "rule")
}

func TestTracingRecordsRewrite(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	h := Tracing(Rewrite(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	r := httptest.NewRequest(http.MethodGet, "/terms-of-service", nil)
	r.Host = "agastyaconnect.com"
	h.ServeHTTP(httptest.NewRecorder(), r)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /terms-of-service", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("edge.rule", "terms"))
	assert.Contains(t, spans[0].Attributes(), attribute.String("edge.rewritten_uri", "/pages/terms-of-service.html"))
}

func TestRewriteTagsSite(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	h := site.Middleware(Rewrite(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Host = "agastyaconnect2.com"
	ctx, span := tp.Tracer("test").Start(r.Context(), "outer")
	h.ServeHTTP(httptest.NewRecorder(), r.WithContext(ctx))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes(), attribute.String("edge.site", "secondary"))
}
