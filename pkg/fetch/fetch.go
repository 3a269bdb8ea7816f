// Package fetch resolves "@@<url>" body directives by proxying real
// upstream content into a mock response.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/getmockd/filemock/pkg/logging"
)

const (
	// DirectivePrefix starts a body that should be fetched from upstream.
	DirectivePrefix = "@@"

	// DefaultTimeout bounds a single upstream fetch.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodySize is the largest upstream body read (10MB).
	DefaultMaxBodySize = 10 * 1024 * 1024
)

// ErrUpstreamStatus is returned for a non-2xx upstream response.
var ErrUpstreamStatus = errors.New("upstream returned non-success status")

// excludedHeaders are transport-framing and hop-by-hop headers that are
// never copied from an upstream response.
var excludedHeaders = []string{
	"Connection",
	"Content-Length",
	"Keep-Alive",
	"Proxy-Connection",
	"TE",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Result is the response synthesized from a fetch.
type Result struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Options configures a Fetcher.
type Options struct {
	// Client performs the upstream request. Defaults to a new http.Client.
	Client *http.Client
	// Timeout bounds each fetch. Zero means DefaultTimeout.
	Timeout time.Duration
	// Logger for diagnostics (nil = no logging).
	Logger *slog.Logger
}

// Fetcher performs external content fetches.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Fetcher with the given options.
func New(opts Options) *Fetcher {
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Fetcher{client: client, timeout: timeout, logger: logger}
}

// IsDirective reports whether body, ignoring leading whitespace, is an
// external fetch directive.
func IsDirective(body string) bool {
	return strings.HasPrefix(strings.TrimLeft(body, " \t\r\n"), DirectivePrefix)
}

// TargetURL extracts the fetch target from a directive body. Only the first
// line is inspected; any following lines are discarded.
func TargetURL(body string) string {
	firstLine, _, _ := strings.Cut(strings.TrimLeft(body, " \t\r\n"), "\n")
	return strings.TrimSpace(strings.TrimPrefix(firstLine, DirectivePrefix))
}

// Fetch resolves a directive body. On success the result carries the
// upstream status and body, with mockHeaders overriding upstream headers.
// On any failure the result is status 200, mockHeaders only and an empty
// body; the failure is logged, never returned.
func (f *Fetcher) Fetch(ctx context.Context, body string, mockHeaders map[string]string) Result {
	target := TargetURL(body)
	f.logger.Info("fetching external content", "url", target)

	status, remote, data, err := f.do(ctx, target)
	if err != nil {
		f.logger.Error("external fetch failed", "url", target, "error", err)
		return Result{Status: http.StatusOK, Headers: copyHeaders(mockHeaders), Body: []byte{}}
	}

	return Result{
		Status:  status,
		Headers: MergeHeaders(CleanHeaders(remote), mockHeaders),
		Body:    data,
	}
}

func (f *Fetcher) do(ctx context.Context, target string) (int, http.Header, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, nil, nil, fmt.Errorf("%w: %s", ErrUpstreamStatus, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, DefaultMaxBodySize))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("reading upstream body: %w", err)
	}

	return resp.StatusCode, resp.Header, data, nil
}

// CleanHeaders flattens upstream headers, dropping transport-framing ones.
// A multi-valued header keeps its last value.
func CleanHeaders(h http.Header) map[string]string {
	cleaned := make(map[string]string, len(h))
	for key, values := range h {
		if len(values) == 0 || isExcluded(key) {
			continue
		}
		cleaned[key] = values[len(values)-1]
	}
	return cleaned
}

// MergeHeaders overlays override onto base. Header names compare
// case-insensitively; the override's spelling of a name wins.
func MergeHeaders(base, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range override {
		for existing := range merged {
			if strings.EqualFold(existing, key) {
				delete(merged, existing)
			}
		}
		merged[key] = value
	}
	return merged
}

func isExcluded(name string) bool {
	for _, h := range excludedHeaders {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}

func copyHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for key, value := range h {
		out[key] = value
	}
	return out
}
