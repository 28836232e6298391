package proxy

import (
	"net/http"
	"strings"
)

type Route struct {
	Prefix  string
	Handler http.Handler
}

// Router dispatches on the first matching path prefix. Requests that match
// no route go to the fallback, or get a 404 when there is none.
type Router struct {
	routes   []Route
	fallback http.Handler
}

func NewRouter(fallback http.Handler) *Router {
	return &Router{fallback: fallback}
}

func (r *Router) AddRoute(prefix string, handler http.Handler) {
	r.routes = append(r.routes, Route{
		Prefix:  prefix,
		Handler: handler,
	})
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	for _, route := range r.routes {
		if strings.HasPrefix(req.URL.Path, route.Prefix) {
			route.Handler.ServeHTTP(w, req)
			return
		}
	}

	if r.fallback != nil {
		r.fallback.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}
