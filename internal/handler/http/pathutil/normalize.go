// Package pathutil normalizes request paths for metric labels and parses the
// numeric identifiers carried in paths and form fields.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to its label template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/users/\d+$`), Template: "/users/:id"},
}

var staticPaths = map[string]struct{}{
	"/":        {},
	"/select":  {},
	"/toggle":  {},
	"/health":  {},
	"/ready":   {},
	"/live":    {},
	"/metrics": {},
}

// OtherPath labels any path the server does not route.
const OtherPath = "/other"

// NormalizePath turns a request path into a bounded metric label. Query
// strings and trailing slashes are dropped, ID segments become :id and
// unrouted paths collapse to OtherPath.
//
//	NormalizePath("/users/3")      // "/users/:id"
//	NormalizePath("/toggle/")      // "/toggle"
//	NormalizePath("/wp-login.php") // "/other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if path == "" {
		path = "/"
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return OtherPath
}

// Cardinality is the number of distinct labels NormalizePath can return.
func Cardinality() int {
	return len(staticPaths) + len(pathPatterns) + 1
}
