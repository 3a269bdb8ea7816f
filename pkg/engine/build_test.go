package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStore(t *testing.T) {
	files := memFiles{
		"/m/1.mock": "GET ~*/items/*\n\n200\n\nwild-1",
		"/m/2.mock": "GET ~*/items/*\n\n200\n\nwild-2",
		"/m/3.mock": "GET https://h/items/9\n\n200\n\nexact",
		"/m/4.mock": "GET https://h/items/9\n\n201\n\nexact-later",
		"/m/5.mock": "\n",
	}

	s := BuildStore([]string{"/m/1.mock", "/m/2.mock", "/m/3.mock", "/m/4.mock", "/m/5.mock", "/m/missing.mock"}, files.read, nil, nil)

	exact, wildcard := s.Len()
	assert.Equal(t, 1, exact)
	assert.Equal(t, 2, wildcard)

	spec := s.Find("GET", "https://h/items/9")
	require.NotNil(t, spec)
	assert.Equal(t, "exact-later", spec.Remainder)

	spec = s.Find("GET", "https://h/items/1")
	require.NotNil(t, spec)
	assert.Equal(t, "wild-1", spec.Remainder)
}

func TestLoadMocks_ReportsReadErrors(t *testing.T) {
	mocks, errs := LoadMocks([]string{"/nope"}, memFiles{}.read, nil)
	assert.Empty(t, mocks)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "/nope")
}
