package engine

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/getmockd/filemock/internal/discovery"
	"github.com/getmockd/filemock/pkg/fetch"
	"github.com/getmockd/filemock/pkg/logging"
	"github.com/getmockd/filemock/pkg/mockfile"
	"github.com/getmockd/filemock/pkg/store"
	"github.com/getmockd/filemock/pkg/template"
)

// Request is the engine's read-only view of an intercepted request.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
}

// Response replaces the real round trip for a matched request.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Header returns the response headers as an http.Header.
func (r *Response) Header() http.Header {
	h := make(http.Header, len(r.Headers))
	for key, value := range r.Headers {
		h.Set(key, value)
	}
	return h
}

// Fetcher resolves "@@url" body directives.
type Fetcher interface {
	Fetch(ctx context.Context, body string, mockHeaders map[string]string) fetch.Result
}

// ReadFileFunc reads a mock file.
type ReadFileFunc func(path string) ([]byte, error)

// Options configures an Engine.
type Options struct {
	// Patterns are the mock file glob patterns. Empty disables the engine.
	Patterns []string
	// Lister resolves Patterns. Defaults to a filesystem lister.
	Lister discovery.Lister
	// ReadFile reads mock files. Defaults to os.ReadFile.
	ReadFile ReadFileFunc
	// Fetcher resolves external fetch directives. Defaults to fetch.New.
	Fetcher Fetcher
	// Logger for diagnostics (nil = no logging).
	Logger *slog.Logger
}

// Engine matches requests against mock files. It keeps no state between
// calls and is safe for concurrent use.
type Engine struct {
	patterns  []string
	lister    discovery.Lister
	readFile  ReadFileFunc
	parser    *mockfile.Parser
	templates *template.Engine
	fetcher   Fetcher
	logger    *slog.Logger
}

// New creates an Engine.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	lister := opts.Lister
	if lister == nil {
		lister = discovery.NewFSLister(logger)
	}
	readFile := opts.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.New(fetch.Options{Logger: logger})
	}

	e := &Engine{
		patterns:  append([]string(nil), opts.Patterns...),
		lister:    lister,
		readFile:  readFile,
		parser:    mockfile.NewParser(logger),
		templates: template.New(logger),
		fetcher:   fetcher,
		logger:    logger,
	}
	if !e.Enabled() {
		logger.Info("mock engine disabled: no mock patterns configured")
	}
	return e
}

// Enabled reports whether any mock patterns are configured.
func (e *Engine) Enabled() bool {
	return len(e.patterns) > 0
}

// Patterns returns the configured glob patterns.
func (e *Engine) Patterns() []string {
	return append([]string(nil), e.patterns...)
}

// Handle looks up a mock for req and builds its response. It returns
// false when the request should proceed untouched.
func (e *Engine) Handle(ctx context.Context, req Request) (*Response, bool) {
	if !e.Enabled() {
		return nil, false
	}

	method := strings.ToUpper(req.Method)
	s := e.Store()

	e.logger.Debug("checking for mock", "method", method, "url", req.URL)
	spec, pattern := s.Lookup(method, req.URL)
	if spec == nil {
		e.logger.Debug("no mock matched, passing through", "method", method, "url", req.URL)
		return nil, false
	}
	if pattern != "" {
		e.logger.Info("wildcard match found", "method", method, "url", req.URL, "pattern", pattern)
	} else {
		e.logger.Info("exact match found", "method", method, "url", req.URL)
	}

	resp := e.buildResponse(ctx, spec, req, method)
	e.logger.Info("serving mock response", "method", method, "url", req.URL, "status", resp.Status)
	return resp, true
}

// Store rediscovers and parses every mock file into a new store.
func (e *Engine) Store() *store.Store {
	files := e.lister.ListFiles(e.patterns)
	if len(files) == 0 {
		e.logger.Info("no mock files found", "patterns", e.patterns)
	} else {
		e.logger.Debug("found mock files", "count", len(files))
	}
	return BuildStore(files, e.readFile, e.parser, e.logger)
}

// Scan parses every discovered mock file and returns the mocks that
// loaded along with the per-file failures.
func (e *Engine) Scan() ([]*mockfile.Mock, []error) {
	return LoadMocks(e.lister.ListFiles(e.patterns), e.readFile, e.parser)
}

// buildResponse renders the matched remainder and resolves an external fetch directive.
func (e *Engine) buildResponse(ctx context.Context, spec *mockfile.Spec, req Request, method string) *Response {
	tctx := template.NewContext(method, req.URL, req.Headers)
	body := e.templates.RenderBody(spec.Remainder, tctx)

	if fetch.IsDirective(body) {
		result := e.fetcher.Fetch(ctx, body, spec.Headers)
		return &Response{Status: result.Status, Headers: result.Headers, Body: result.Body}
	}

	headers := make(map[string]string, len(spec.Headers))
	for key, value := range spec.Headers {
		headers[key] = value
	}
	return &Response{Status: spec.Status, Headers: headers, Body: []byte(body)}
}
