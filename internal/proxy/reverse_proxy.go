package proxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.uber.org/zap"

	"github.com/CSroseX/edge-path-rewriter/internal/observability"
)

func NewReverseProxy(target string, log *zap.Logger) (*httputil.ReverseProxy, error) {
	backendURL, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	proxy := httputil.NewSingleHostReverseProxy(backendURL)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Warn("backend request failed",
			zap.String("backend", backendURL.Host),
			zap.String("path", r.URL.Path),
			zap.String("requestID", observability.RequestID(r.Context())),
			zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
	}
	return proxy, nil
}

// ProxyHandler forwards every request to the backend at target.
func ProxyHandler(target string, log *zap.Logger) (http.Handler, error) {
	return NewReverseProxy(target, log)
}

// StaticHandler serves files from dir, the local stand-in for the static
// object origin. Like the origin it never redirects and never lists
// directories: anything that is not a regular file is a 404.
func StaticHandler(dir string) http.Handler {
	root := http.Dir(dir)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, err := root.Open(r.URL.Path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		fi, err := f.Stat()
		if err != nil || fi.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
	})
}
