package analytics

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/CSroseX/edge-path-rewriter/internal/observability"
	"github.com/CSroseX/edge-path-rewriter/internal/rewrite"
	"github.com/CSroseX/edge-path-rewriter/internal/site"
)

// Middleware counts the rewrite decision of every request. It must sit inside
// the rewrite middleware. A failed write is logged and never fails the request.
func Middleware(a *Analytics, log *zap.Logger, next http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if d, ok := rewrite.FromContext(r.Context()); ok {
			if err := a.RecordDecision(r.Context(), site.Host(r), d); err != nil {
				log.Warn("failed to record rewrite",
					zap.String("requestID", observability.RequestID(r.Context())),
					zap.Error(err))
			}
		}
		next.ServeHTTP(w, r)
	})
}
