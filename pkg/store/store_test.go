package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/filemock/pkg/mockfile"
)

func spec(status int) *mockfile.Spec {
	return &mockfile.Spec{Status: status, Headers: map[string]string{}}
}

func TestFind_ExactBeatsWildcard(t *testing.T) {
	s := New()
	s.AddWildcard("GET", "/users/*", spec(201))
	s.AddExact("GET", "/users/42", spec(200))

	got := s.Find("GET", "/users/42")
	require.NotNil(t, got)
	assert.Equal(t, 200, got.Status)

	got = s.Find("GET", "/users/7")
	require.NotNil(t, got)
	assert.Equal(t, 201, got.Status)
}

func TestFind_FirstWildcardWins(t *testing.T) {
	s := New()
	s.AddWildcard("GET", "/api/*", spec(1))
	s.AddWildcard("GET", "/api/users/*", spec(2))

	assert.Equal(t, 1, s.Find("GET", "/api/users/9").Status)
}

func TestFind_MethodMustMatch(t *testing.T) {
	s := New()
	s.AddExact("GET", "/x", spec(200))
	s.AddWildcard("POST", "/x*", spec(201))

	assert.Nil(t, s.Find("DELETE", "/x"))
	assert.Equal(t, 201, s.Find("POST", "/x").Status)
}

func TestAddExact_LastWriteWins(t *testing.T) {
	s := New()
	s.AddExact("GET", "/x", spec(200))
	s.AddExact("GET", "/x", spec(500))

	assert.Equal(t, 500, s.Find("GET", "/x").Status)
	exact, wildcard := s.Len()
	assert.Equal(t, 1, exact)
	assert.Equal(t, 0, wildcard)
}

func TestWildcardPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		url     string
		matches bool
	}{
		{"https://api.example.com/*", "https://api.example.com/users/42/orders", true},
		{"*/users/?", "https://h/users/7", true},
		{"*/users/?", "https://h/users/42", false},
		{"*/v[12]/*", "https://h/v2/items", true},
		{"*/v[12]/*", "https://h/v3/items", false},
		{"*/v[!1]/*", "https://h/v3/items", true},
		{"https://h/exact", "https://h/exact", true},
		{"https://h/exact", "https://h/exact/more", false},
		{"*.json", "https://h/data.json?x=1", false},
		{"*.json*", "https://h/data.json?x=1", true},
		{"/api/{id}/*", "/api/{id}/x", true},
		{"/api/{a,b}/*", "/api/a/x", false},
		{"/api/{a,b}/*", "/api/{a,b}/x", true},
		{`/path\*`, `/path\anything`, true},
		{"*/v[{]/*", "https://h/v{/items", true},
		{"*/v[]x]/*", "https://h/v]/items", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.url, func(t *testing.T) {
			s := New()
			s.AddWildcard("GET", tt.pattern, spec(200))
			assert.Equal(t, tt.matches, s.Find("GET", tt.url) != nil)
		})
	}
}

func TestShellPattern(t *testing.T) {
	tests := map[string]string{
		"/users/*":    "/users/*",
		"/api/{id}/?": `/api/\{id\}/?`,
		`/a\b`:        `/a\\b`,
		"/v[{}]/*":    "/v[{}]/*",
		"/x[!]]/{y}":  `/x[!\]]/\{y\}`,
		"/v[]a]":      `/v[\]a]`,
		"/v[a-c]":     "/v[a-c]",
	}
	for in, want := range tests {
		assert.Equal(t, want, shellPattern(in), "shellPattern(%q)", in)
	}
}

func TestAddWildcard_InvalidPatternComparesLiterally(t *testing.T) {
	s := New()
	s.AddWildcard("GET", "/broken[", spec(200))

	assert.NotNil(t, s.Find("GET", "/broken["))
	assert.Nil(t, s.Find("GET", "/broken"))
}

func TestAdd_ParsedMocks(t *testing.T) {
	s := New()
	s.Add(&mockfile.Mock{Method: "GET", URL: "/a", Spec: mockfile.Spec{Status: 200}})
	s.Add(&mockfile.Mock{Method: "GET", URL: "/b/*", Wildcard: true, Spec: mockfile.Spec{Status: 202}})

	got, pattern := s.Lookup("GET", "/b/c")
	require.NotNil(t, got)
	assert.Equal(t, 202, got.Status)
	assert.Equal(t, "/b/*", pattern)

	got, pattern = s.Lookup("GET", "/a")
	require.NotNil(t, got)
	assert.Empty(t, pattern)
}

func TestClear(t *testing.T) {
	s := New()
	s.AddExact("GET", "/a", spec(200))
	s.AddWildcard("GET", "*", spec(200))

	s.Clear()

	assert.Nil(t, s.Find("GET", "/a"))
	exact, wildcard := s.Len()
	assert.Zero(t, exact)
	assert.Zero(t, wildcard)
}
