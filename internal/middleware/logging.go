package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/CSroseX/edge-path-rewriter/internal/observability"
	"github.com/CSroseX/edge-path-rewriter/internal/rewrite"
)

type logKey struct{}

// requestLog is filled in by inner middleware so the access line can carry
// the rewrite decision.
type requestLog struct {
	decision rewrite.Decision
	decided  bool
}

func recordDecision(ctx context.Context, d rewrite.Decision) {
	if rl, ok := ctx.Value(logKey{}).(*requestLog); ok {
		rl.decision = d
		rl.decided = true
	}
}

// statusCapture wraps a ResponseWriter to capture the status code.
type statusCapture struct {
	http.ResponseWriter
	statusCode int
}

func (sc *statusCapture) WriteHeader(code int) {
	sc.statusCode = code
	sc.ResponseWriter.WriteHeader(code)
}

func (sc *statusCapture) Unwrap() http.ResponseWriter {
	return sc.ResponseWriter
}

// Logging writes one access line per request. It assigns the request id,
// honoring one sent by the client, and echoes it in the response.
func Logging(log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.EscapedPath()

			id := r.Header.Get(observability.RequestIDHeader)
			if id == "" {
				id = observability.NewRequestID()
			}
			w.Header().Set(observability.RequestIDHeader, id)

			sc := &statusCapture{ResponseWriter: w, statusCode: http.StatusOK}
			rl := &requestLog{}

			ctx := context.WithValue(observability.WithRequestID(r.Context(), id), logKey{}, rl)
			r = r.Clone(ctx)
			// forwarded to the backend by the proxy
			r.Header.Set(observability.RequestIDHeader, id)
			next.ServeHTTP(sc, r)

			fields := []zap.Field{
				zap.String("requestID", id),
				zap.String("method", r.Method),
				zap.String("host", r.Host),
				zap.String("path", path),
				zap.Int("status", sc.statusCode),
				zap.Duration("elapsed", time.Since(start)),
			}
			if rl.decided {
				fields = append(fields,
					zap.String("uri", rl.decision.URI),
					zap.String("rule", string(rl.decision.Rule)))
			}
			log.Info("request", fields...)
		})
	}
}
