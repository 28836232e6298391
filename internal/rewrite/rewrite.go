// Package rewrite maps an edge request's host and path to the object the
// delivery network should serve.
package rewrite

import (
	"strings"

	"github.com/CSroseX/edge-path-rewriter/internal/site"
)

// Rule identifies which row of the routing table produced a decision.
type Rule string

const (
	RuleWelcome  Rule = "welcome"
	RulePrivacy  Rule = "privacy"
	RuleTerms    Rule = "terms"
	RuleApp      Rule = "app"
	RuleStatic   Rule = "static"
	RuleNotFound Rule = "not_found"
)

// Rules lists every rule in evaluation order.
var Rules = []Rule{RuleWelcome, RulePrivacy, RuleTerms, RuleApp, RuleStatic, RuleNotFound}

const (
	PrivacyPage = "/pages/privacy.html"
	TermsPage   = "/pages/terms-of-service.html"

	AppPrefix       = "/app/"
	PagesPrefix     = "/pages/"
	HeadshotsPrefix = "/headshots/"
)

// Decision is the rewritten uri and the rule that chose it.
type Decision struct {
	URI  string
	Rule Rule
}

// Rewritten reports whether the decision changed original.
func (d Decision) Rewritten(original string) bool {
	return d.URI != original
}

// Decide evaluates the routing table for host and uri. The first matching
// rule wins.
func Decide(host, uri string) Decision {
	switch {
	case uri == "/":
		return Decision{URI: site.Lookup(host).WelcomePage, Rule: RuleWelcome}
	case uri == "/privacy":
		return Decision{URI: PrivacyPage, Rule: RulePrivacy}
	case uri == "/terms-of-service":
		return Decision{URI: TermsPage, Rule: RuleTerms}
	case strings.HasPrefix(uri, AppPrefix):
		// left for the delivery network to forward to the application tier
		return Decision{URI: uri, Rule: RuleApp}
	case !strings.HasPrefix(uri, PagesPrefix) && !strings.HasPrefix(uri, HeadshotsPrefix):
		return Decision{URI: site.Lookup(host).NotFoundPage, Rule: RuleNotFound}
	default:
		return Decision{URI: uri, Rule: RuleStatic}
	}
}

// Rewrite returns the uri to serve for host and uri.
func Rewrite(host, uri string) string {
	return Decide(host, uri).URI
}
