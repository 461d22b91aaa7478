package http

import (
	"net/http"
	"strings"

	"postboard/pkg/security/csp"
)

// CSPConfig selects Content-Security-Policy headers by path.
type CSPConfig struct {
	Enabled    bool
	ReportOnly bool
	// DefaultPolicy applies when no PathPolicies prefix matches.
	DefaultPolicy *csp.Builder
	// PathPolicies maps path prefixes to policies; the longest match wins.
	// The prefix "/" matches only the root path.
	PathPolicies map[string]*csp.Builder
}

// DefaultCSPConfig serves the page policy on page routes and the strict
// policy everywhere else.
func DefaultCSPConfig(enabled, reportOnly bool) CSPConfig {
	return CSPConfig{
		Enabled:       enabled,
		ReportOnly:    reportOnly,
		DefaultPolicy: csp.StrictPolicy(),
		PathPolicies: map[string]*csp.Builder{
			"/":       csp.PagePolicy(),
			"/users/": csp.PagePolicy(),
		},
	}
}

// CSP sets the policy header chosen for the request path. The policies in
// cfg are switched to cfg.ReportOnly here and must not be mutated afterwards.
func CSP(cfg CSPConfig) Middleware {
	if cfg.DefaultPolicy != nil {
		cfg.DefaultPolicy.ReportOnly(cfg.ReportOnly)
	}
	for _, policy := range cfg.PathPolicies {
		if policy != nil {
			policy.ReportOnly(cfg.ReportOnly)
		}
	}

	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if policy := selectPolicy(cfg, r.URL.Path); policy != nil {
				if value := policy.Build(); value != "" {
					w.Header().Set(policy.HeaderName(), value)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func selectPolicy(cfg CSPConfig, path string) *csp.Builder {
	longest := ""
	var matched *csp.Builder
	for prefix, policy := range cfg.PathPolicies {
		ok := strings.HasPrefix(path, prefix)
		if prefix == "/" {
			ok = path == "/"
		}
		if ok && len(prefix) > len(longest) {
			longest, matched = prefix, policy
		}
	}
	if matched != nil {
		return matched
	}
	return cfg.DefaultPolicy
}
