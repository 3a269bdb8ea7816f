// Package store indexes parsed mocks for lookup by method and URL.
//
// Exact mocks are looked up first by (method, URL). When no exact mock
// matches, wildcard mocks are tried in insertion order and the first whose
// method matches and whose shell-style pattern matches the URL wins.
//
// A Store is built, queried and discarded within one request and is not
// safe for concurrent mutation.
package store

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/getmockd/filemock/pkg/mockfile"
)

// WildcardMock is a glob-pattern mock entry.
type WildcardMock struct {
	Method  string
	Pattern string
	Spec    *mockfile.Spec

	matcher glob.Glob
}

// Match reports whether the entry matches the request.
func (w *WildcardMock) Match(method, url string) bool {
	if w.Method != method {
		return false
	}
	if w.matcher == nil {
		return w.Pattern == url
	}
	return w.matcher.Match(url)
}

// Store holds exact and wildcard mocks.
type Store struct {
	exact     map[mockfile.Key]*mockfile.Spec
	wildcards []*WildcardMock
}

// New creates an empty Store.
func New() *Store {
	return &Store{exact: make(map[mockfile.Key]*mockfile.Spec)}
}

// Clear removes all mocks.
func (s *Store) Clear() {
	s.exact = make(map[mockfile.Key]*mockfile.Spec)
	s.wildcards = nil
}

// AddExact stores an exact-match mock. A later call with the same method
// and URL replaces the earlier spec.
func (s *Store) AddExact(method, url string, spec *mockfile.Spec) {
	s.exact[mockfile.Key{Method: method, URL: url}] = spec
}

// AddWildcard appends a wildcard mock. Only *, ? and [...] are special;
// braces and backslashes match themselves. A pattern that does not compile
// falls back to literal comparison.
func (s *Store) AddWildcard(method, pattern string, spec *mockfile.Spec) {
	w := &WildcardMock{Method: method, Pattern: pattern, Spec: spec}
	if g, err := glob.Compile(shellPattern(pattern)); err == nil {
		w.matcher = g
	}
	s.wildcards = append(s.wildcards, w)
}

// Add inserts a parsed mock as exact or wildcard.
func (s *Store) Add(m *mockfile.Mock) {
	spec := m.Spec
	if m.Wildcard {
		s.AddWildcard(m.Method, m.URL, &spec)
		return
	}
	s.AddExact(m.Method, m.URL, &spec)
}

// Find returns the response definition matching method and url, or nil.
func (s *Store) Find(method, url string) *mockfile.Spec {
	spec, _ := s.Lookup(method, url)
	return spec
}

// Lookup is Find that also reports the wildcard pattern that matched, or
// "" for an exact match.
func (s *Store) Lookup(method, url string) (*mockfile.Spec, string) {
	if spec, ok := s.exact[mockfile.Key{Method: method, URL: url}]; ok {
		return spec, ""
	}
	for _, w := range s.wildcards {
		if w.Match(method, url) {
			return w.Spec, w.Pattern
		}
	}
	return nil, ""
}

// Len returns the number of exact and wildcard mocks.
func (s *Store) Len() (exact, wildcard int) {
	return len(s.exact), len(s.wildcards)
}

// shellPattern rewrites a shell pattern into gobwas glob syntax. Braces
// and backslashes are escaped so they match themselves, and a ']' leading
// a [...] class is escaped so it stays a member of the class.
func shellPattern(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 4)
	inClass, classStart := false, false
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		switch {
		case !inClass:
			switch ch {
			case '[':
				inClass, classStart = true, true
			case '{', '}', '\\':
				b.WriteByte('\\')
			}
		case ch == '!' && classStart && pattern[i-1] == '[':
		case ch == ']' && !classStart:
			inClass = false
		default:
			classStart = false
			if ch == ']' || ch == '\\' {
				b.WriteByte('\\')
			}
		}
		b.WriteByte(ch)
	}
	return b.String()
}
