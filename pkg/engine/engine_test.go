package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/filemock/internal/discovery"
	"github.com/getmockd/filemock/pkg/fetch"
)

// memFiles is an in-memory mock directory keyed by path.
type memFiles map[string]string

func (m memFiles) lister() discovery.StaticLister {
	paths := make(discovery.StaticLister, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	return paths
}

func (m memFiles) read(path string) ([]byte, error) {
	content, ok := m[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(content), nil
}

func newMemEngine(files memFiles, opts ...func(*Options)) *Engine {
	o := Options{
		Patterns: []string{"/mocks/**/*.mock"},
		Lister:   files.lister(),
		ReadFile: files.read,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return New(o)
}

type fetchCall struct {
	body    string
	headers map[string]string
}

type stubFetcher struct {
	calls  []fetchCall
	result fetch.Result
}

func (s *stubFetcher) Fetch(_ context.Context, body string, mockHeaders map[string]string) fetch.Result {
	s.calls = append(s.calls, fetchCall{body: body, headers: mockHeaders})
	return s.result
}

func get(url string) Request {
	return Request{Method: "GET", URL: url, Headers: http.Header{}}
}

func TestHandle_Disabled(t *testing.T) {
	files := memFiles{"/mocks/a.mock": "GET /users\n\n200\n\nok"}
	e := newMemEngine(files, func(o *Options) { o.Patterns = nil })

	assert.False(t, e.Enabled())
	resp, ok := e.Handle(context.Background(), get("/users"))
	assert.False(t, ok)
	assert.Nil(t, resp)
}

func TestHandle_LiteralMock(t *testing.T) {
	files := memFiles{
		"/mocks/users.mock": "GET /users\n\n200\nContent-Type: application/json\n\n{\"ok\":true}",
	}

	resp, ok := newMemEngine(files).Handle(context.Background(), get("/users"))
	require.True(t, ok)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, map[string]string{"Content-Type": "application/json"}, resp.Headers)
	assert.Equal(t, `{"ok":true}`, string(resp.Body))
}

func TestHandle_MethodCaseInsensitive(t *testing.T) {
	files := memFiles{"/mocks/a.mock": "post /orders\n\n201\n\ncreated"}

	resp, ok := newMemEngine(files).Handle(context.Background(), Request{Method: "post", URL: "/orders"})
	require.True(t, ok)
	assert.Equal(t, 201, resp.Status)
}

func TestHandle_NoMatchPassesThrough(t *testing.T) {
	files := memFiles{"/mocks/a.mock": "GET /users\n\n200\n\nok"}
	e := newMemEngine(files)

	_, ok := e.Handle(context.Background(), get("/other"))
	assert.False(t, ok)

	_, ok = e.Handle(context.Background(), Request{Method: "DELETE", URL: "/users"})
	assert.False(t, ok)
}

func TestHandle_ExactBeatsWildcardRegardlessOfOrder(t *testing.T) {
	files := memFiles{
		"/mocks/a-wild.mock":  "GET ~/users/*\n\n200\n\nwildcard",
		"/mocks/z-exact.mock": "GET /users/42\n\n200\n\nexact",
	}
	e := newMemEngine(files)

	resp, ok := e.Handle(context.Background(), get("/users/42"))
	require.True(t, ok)
	assert.Equal(t, "exact", string(resp.Body))

	resp, ok = e.Handle(context.Background(), get("/users/7"))
	require.True(t, ok)
	assert.Equal(t, "wildcard", string(resp.Body))
}

func TestHandle_EarlierWildcardFileWins(t *testing.T) {
	files := memFiles{
		"/mocks/b/late.mock": "GET ~/api/*\n\n200\n\nlate",
		"/mocks/a/early.mock": "GET ~/api/items/*\n\n200\n\nearly",
	}

	resp, ok := newMemEngine(files).Handle(context.Background(), get("/api/items/1"))
	require.True(t, ok)
	assert.Equal(t, "early", string(resp.Body))
}

func TestHandle_DuplicateExactLaterFileWins(t *testing.T) {
	files := memFiles{
		"/mocks/1.mock": "GET /dup\n\n200\n\nfirst",
		"/mocks/2.mock": "GET /dup\n\n202\n\nsecond",
	}

	resp, ok := newMemEngine(files).Handle(context.Background(), get("/dup"))
	require.True(t, ok)
	assert.Equal(t, 202, resp.Status)
	assert.Equal(t, "second", string(resp.Body))
}

func TestHandle_BadFileIsolated(t *testing.T) {
	files := memFiles{
		"/mocks/a-bad.mock":  "GET /bad\n\nnot-a-number\n\nbody",
		"/mocks/b-good.mock": "GET /good\n\n200\n\ngood",
	}
	e := newMemEngine(files)

	_, ok := e.Handle(context.Background(), get("/bad"))
	assert.False(t, ok)

	resp, ok := e.Handle(context.Background(), get("/good"))
	require.True(t, ok)
	assert.Equal(t, "good", string(resp.Body))
}

func TestHandle_OutOfRangeStatusSkipsFile(t *testing.T) {
	files := memFiles{
		"/mocks/a-odd.mock":  "GET /odd\n\n42\n\nodd",
		"/mocks/b-next.mock": "GET /next\n\n299\n\nnext",
	}
	e := newMemEngine(files)

	_, ok := e.Handle(context.Background(), get("/odd"))
	assert.False(t, ok)

	resp, ok := e.Handle(context.Background(), get("/next"))
	require.True(t, ok)
	assert.Equal(t, 299, resp.Status)
	assert.Equal(t, "next", string(resp.Body))
}

func TestHandle_TemplateAndSeparator(t *testing.T) {
	files := memFiles{
		"/mocks/t.mock": "GET ~https://api.example.com/greet*\n\n200\nContent-Type: text/plain\n\n" +
			"<%\n  who = header(\"X-User\")\n%>\n---\nhello {{upper(who)}} via {{request.method}}\n",
	}
	req := get("https://api.example.com/greet?x=1")
	req.Headers.Set("X-User", "bob")

	resp, ok := newMemEngine(files).Handle(context.Background(), req)
	require.True(t, ok)
	assert.Equal(t, "hello BOB via GET\n", string(resp.Body))
}

func TestHandle_SeparatorConsumesOneNewline(t *testing.T) {
	files := memFiles{"/mocks/s.mock": "GET /s\n\n200\n\n---\n<text>"}

	resp, ok := newMemEngine(files).Handle(context.Background(), get("/s"))
	require.True(t, ok)
	assert.Equal(t, "<text>", string(resp.Body))
}

func TestHandle_RenderErrorServesRawRemainder(t *testing.T) {
	files := memFiles{"/mocks/r.mock": "GET /r\n\n200\n\n<% oops\n---\nraw"}

	resp, ok := newMemEngine(files).Handle(context.Background(), get("/r"))
	require.True(t, ok)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "raw", string(resp.Body))
}

func TestHandle_FetchDirective(t *testing.T) {
	fetcher := &stubFetcher{result: fetch.Result{Status: 203, Headers: map[string]string{"A": "2"}, Body: []byte("remote")}}
	files := memFiles{"/mocks/f.mock": "GET /f\n\n200\nA: 2\n\n  @@http://x/y\nignored"}

	resp, ok := newMemEngine(files, func(o *Options) { o.Fetcher = fetcher }).Handle(context.Background(), get("/f"))
	require.True(t, ok)
	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, map[string]string{"A": "2"}, fetcher.calls[0].headers)
	assert.Equal(t, "http://x/y", fetch.TargetURL(fetcher.calls[0].body))
	assert.Equal(t, 203, resp.Status)
	assert.Equal(t, "remote", string(resp.Body))
}

func TestHandle_FetchMergesUpstreamHeaders(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("A", "1")
		w.Header().Set("B", "upstream")
		_, _ = w.Write([]byte("proxied"))
	}))
	defer upstream.Close()

	files := memFiles{"/mocks/f.mock": "GET /f\n\n418\nA: 2\n\n@@" + upstream.URL + "/y"}

	resp, ok := newMemEngine(files).Handle(context.Background(), get("/f"))
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "2", resp.Headers["A"])
	assert.Equal(t, "upstream", resp.Headers["B"])
	assert.Equal(t, "proxied", string(resp.Body))
}

func TestHandle_FetchFailureDegrades(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	target := closed.URL
	closed.Close()

	files := memFiles{"/mocks/f.mock": "GET /f\n\n500\nX-Mock: yes\n\n@@" + target}
	e := newMemEngine(files, func(o *Options) {
		o.Fetcher = fetch.New(fetch.Options{Timeout: 500 * time.Millisecond})
	})

	resp, ok := e.Handle(context.Background(), get("/f"))
	require.True(t, ok)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, map[string]string{"X-Mock": "yes"}, resp.Headers)
	assert.Empty(t, resp.Body)
}

func TestHandle_HotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.mock")
	e := New(Options{Patterns: []string{filepath.Join(dir, "*.mock")}})

	_, ok := e.Handle(context.Background(), get("/live"))
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("GET /live\n\n200\n\nv1"), 0644))
	resp, ok := e.Handle(context.Background(), get("/live"))
	require.True(t, ok)
	assert.Equal(t, "v1", string(resp.Body))

	require.NoError(t, os.WriteFile(path, []byte("GET /live\n\n200\n\nv2"), 0644))
	resp, ok = e.Handle(context.Background(), get("/live"))
	require.True(t, ok)
	assert.Equal(t, "v2", string(resp.Body))

	require.NoError(t, os.Remove(path))
	_, ok = e.Handle(context.Background(), get("/live"))
	assert.False(t, ok)
}

func TestHandle_ResponseHeadersAreCopies(t *testing.T) {
	files := memFiles{"/mocks/a.mock": "GET /a\n\n200\nX-A: 1\n\nok"}
	e := newMemEngine(files)

	resp, _ := e.Handle(context.Background(), get("/a"))
	resp.Headers["X-A"] = "mutated"

	resp, _ = e.Handle(context.Background(), get("/a"))
	assert.Equal(t, "1", resp.Headers["X-A"])
}

func TestResponse_Header(t *testing.T) {
	r := &Response{Headers: map[string]string{"content-type": "text/plain"}}
	assert.Equal(t, "text/plain", r.Header().Get("Content-Type"))
}

func TestScan(t *testing.T) {
	files := memFiles{
		"/mocks/a.mock": "GET /a\n\n200\n",
		"/mocks/b.mock": "broken",
		"/mocks/c.mock": "PUT ~/c/*\n\n204\n",
	}

	mocks, errs := newMemEngine(files).Scan()
	require.Len(t, mocks, 2)
	assert.Equal(t, "/mocks/a.mock", mocks[0].Source)
	assert.True(t, mocks[1].Wildcard)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "/mocks/b.mock")
}
