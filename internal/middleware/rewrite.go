package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/CSroseX/edge-path-rewriter/internal/rewrite"
	"github.com/CSroseX/edge-path-rewriter/internal/site"
)

// Rewrite replaces the request path with the object the edge would serve.
// The decision is made on the escaped path, the raw uri the edge sees. The
// client-visible URL is unchanged; nothing is redirected.
func Rewrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uri := r.URL.EscapedPath()
		d := rewrite.Decide(site.Host(r), uri)

		span := trace.SpanFromContext(r.Context())
		span.SetAttributes(
			attribute.String("edge.rewritten_uri", d.URI),
			attribute.String("edge.rule", string(d.Rule)),
		)
		if s, ok := site.FromContext(r.Context()); ok {
			span.SetAttributes(attribute.String("edge.site", s.Name))
		}
		recordDecision(r.Context(), d)

		r = r.WithContext(rewrite.WithDecision(r.Context(), d))
		if d.Rewritten(uri) {
			// rewritten uris are fixed page paths with nothing to escape
			u := *r.URL
			u.Path = d.URI
			u.RawPath = ""
			r.URL = &u
		}
		next.ServeHTTP(w, r)
	})
}
