package mockfile

import "strings"

// WildcardPrefix marks a request-line URL as a glob pattern.
const WildcardPrefix = "~"

// Key identifies an exact-match mock.
type Key struct {
	Method string
	URL    string
}

// Spec is the response half of a mock definition.
type Spec struct {
	Status int
	// Headers holds declared response headers. A header repeated within one
	// file keeps the last value.
	Headers map[string]string
	// Remainder is the unparsed template and body source.
	Remainder string
}

// Mock is one parsed mock file.
type Mock struct {
	Method string
	// URL is the exact URL, or the glob pattern when Wildcard is set.
	URL      string
	Wildcard bool
	Spec     Spec
	// Source is the file the mock was read from, for diagnostics.
	Source string
}

// Key returns the exact-match key of the mock.
func (m *Mock) Key() Key {
	return Key{Method: m.Method, URL: m.URL}
}

// splitTarget separates a request-line URL into its match target and kind.
func splitTarget(url string) (target string, wildcard bool) {
	if strings.HasPrefix(url, WildcardPrefix) {
		return strings.TrimSpace(url[len(WildcardPrefix):]), true
	}
	return url, false
}
