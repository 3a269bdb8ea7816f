package discovery

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/filemock/pkg/logging"
)

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("GET /x\n\n200\n"), 0644))
	}
}

func TestListFiles_SimpleGlob(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "b.mock", "a.mock", "c.txt", "nested/d.mock")

	files := NewFSLister(nil).ListFiles([]string{filepath.Join(root, "*.mock")})

	assert.Equal(t, []string{
		filepath.Join(root, "a.mock"),
		filepath.Join(root, "b.mock"),
	}, files)
}

func TestListFiles_RecursiveGlob(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "top.mock", "x/one.mock", "x/y/two.mock", "x/y/skip.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.mock"), 0755))

	files := NewFSLister(nil).ListFiles([]string{filepath.Join(root, "**", "*.mock")})

	assert.Equal(t, []string{
		filepath.Join(root, "top.mock"),
		filepath.Join(root, "x", "one.mock"),
		filepath.Join(root, "x", "y", "two.mock"),
	}, files)
}

func TestListFiles_UnionDedupAndSort(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a/1.mock", "b/2.mock")

	files := NewFSLister(nil).ListFiles([]string{
		filepath.Join(root, "b", "*.mock"),
		filepath.Join(root, "**", "*.mock"),
		filepath.Join(root, "a", "*.mock"),
	})

	assert.Equal(t, []string{
		filepath.Join(root, "a", "1.mock"),
		filepath.Join(root, "b", "2.mock"),
	}, files)
}

func TestListFiles_DirectoriesIgnored(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "folder.mock"), 0755))

	assert.Empty(t, NewFSLister(nil).ListFiles([]string{filepath.Join(root, "*.mock")}))
}

func TestListFiles_MissingBaseAndBadPattern(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "ok.mock")

	files := NewFSLister(nil).ListFiles([]string{
		filepath.Join(root, "does-not-exist", "**", "*.mock"),
		filepath.Join(root, "[bad"),
		filepath.Join(root, "*.mock"),
	})

	assert.Equal(t, []string{filepath.Join(root, "ok.mock")}, files)
}

func TestListFiles_RelativeAndAbsolutePatternsDedup(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "mocks/a.mock")
	t.Chdir(root)

	files := NewFSLister(nil).ListFiles([]string{
		filepath.Join("mocks", "*.mock"),
		filepath.Join(root, "mocks", "*.mock"),
	})

	assert.Len(t, files, 1)
}

func TestListFiles_MissingBaseDirectoryWarns(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelWarn, Output: &logs})
	missing := filepath.Join(t.TempDir(), "gone")

	files := NewFSLister(logger).ListFiles([]string{filepath.Join(missing, "*.mock")})

	assert.Empty(t, files)
	assert.Contains(t, logs.String(), "base directory does not exist")
	assert.Contains(t, logs.String(), missing)
}

func TestStaticLister(t *testing.T) {
	l := StaticLister{"b", "a", "b"}
	assert.Equal(t, []string{"a", "b"}, l.ListFiles(nil))
}

func TestSplitPatterns(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"/mocks/*.mock", []string{"/mocks/*.mock"}},
		{" /a/*.mock , ,/b/**/*.mock,", []string{"/a/*.mock", "/b/**/*.mock"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitPatterns(tt.input))
		})
	}
}
