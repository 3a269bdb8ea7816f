// Package proxy provides the HTTP forward proxy that hosts the mock engine.
//
// Every plain HTTP request is offered to an Interceptor first. A matched
// request is answered from the mock; anything else is forwarded upstream.
// CONNECT requests are tunnelled without inspection.
package proxy

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/getmockd/filemock/pkg/engine"
	"github.com/getmockd/filemock/pkg/logging"
)

const (
	// DefaultDialTimeout bounds CONNECT tunnel dials.
	DefaultDialTimeout = 30 * time.Second
)

// Interceptor decides whether a request is answered locally.
type Interceptor interface {
	Handle(ctx context.Context, req engine.Request) (*engine.Response, bool)
}

// Options configures proxy behavior.
type Options struct {
	// Interceptor is consulted for every in-scope request. Nil forwards all traffic.
	Interceptor Interceptor
	// Scope limits which requests reach the Interceptor (nil = all).
	Scope *Scope
	// Client forwards unmatched requests. Defaults to a client that does
	// not follow redirects or use another proxy.
	Client *http.Client
	// DialTimeout bounds CONNECT dials. Defaults to DefaultDialTimeout.
	DialTimeout time.Duration
	// Logger for traffic logging (nil = no logging)
	Logger *slog.Logger
}

// Proxy is an HTTP forward proxy with mock interception.
type Proxy struct {
	interceptor Interceptor
	scope       *Scope
	client      *http.Client
	dialer      *net.Dialer
	logger      *slog.Logger
}

// New creates a new Proxy with the given options.
func New(opts Options) *Proxy {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	scope := opts.Scope
	if scope == nil {
		scope = NewScope()
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               nil,
				MaxIdleConnsPerHost: 16,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}

	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = DefaultDialTimeout
	}

	return &Proxy{
		interceptor: opts.Interceptor,
		scope:       scope,
		client:      client,
		dialer:      &net.Dialer{Timeout: dialTimeout},
		logger:      logger,
	}
}

// Scope returns the interception scope.
func (p *Proxy) Scope() *Scope {
	return p.scope
}

// ServeHTTP implements http.Handler for the proxy.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodConnect {
		p.handleConnect(w, r)
	} else {
		p.handleHTTP(w, r)
	}
}
