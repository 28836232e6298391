package analytics

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/CSroseX/edge-path-rewriter/internal/site"
)

// Handler serves GET /admin/rewrites?host=<host>.
func Handler(a *Analytics, log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		host := r.URL.Query().Get("host")
		if host == "" {
			http.Error(w, "host query missing", http.StatusBadRequest)
			return
		}

		counts, err := a.FetchHostCounts(r.Context(), host)
		if err != nil {
			log.Error("failed to fetch rewrite counts", zap.String("host", host), zap.Error(err))
			http.Error(w, "analytics unavailable", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		json.NewEncoder(w).Encode(map[string]any{
			"host":   host,
			"site":   site.Lookup(host).Name,
			"counts": counts,
		})
	}
}
