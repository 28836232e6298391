package site

import (
	"context"
	"net"
	"net/http"
)

// key type for context
type contextKey string

const siteKey contextKey = "site"

// SecondaryHost is the only host that gets the secondary pages.
const SecondaryHost = "agastyaconnect2.com"

// Site holds the host-specific landing and not-found pages.
type Site struct {
	Name         string
	WelcomePage  string
	NotFoundPage string
}

var (
	Primary = Site{
		Name:         "primary",
		WelcomePage:  "/pages/welcome.html",
		NotFoundPage: "/pages/404.html",
	}
	Secondary = Site{
		Name:         "secondary",
		WelcomePage:  "/pages/welcome-2.html",
		NotFoundPage: "/pages/404-2.html",
	}
)

// Lookup returns the site for host. Matching is exact and case-sensitive;
// every host other than SecondaryHost gets Primary.
func Lookup(host string) Site {
	if host == SecondaryHost {
		return Secondary
	}
	return Primary
}

// Host returns the request host without any port suffix.
func Host(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.Host)
	if err != nil {
		return r.Host
	}
	return host
}

// FromContext returns site from request context
func FromContext(ctx context.Context) (Site, bool) {
	s, ok := ctx.Value(siteKey).(Site)
	return s, ok
}

// WithSite attaches s to ctx.
func WithSite(ctx context.Context, s Site) context.Context {
	return context.WithValue(ctx, siteKey, s)
}

// Middleware resolves the site from the Host header and stores it in context
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := Lookup(Host(r))
		next.ServeHTTP(w, r.WithContext(WithSite(r.Context(), s)))
	})
}
