package proxy

import (
	"io"
	"net/http"

	"github.com/getmockd/filemock/pkg/engine"
	"github.com/getmockd/filemock/pkg/httputil"
	"github.com/getmockd/filemock/pkg/util"
)

// handleHTTP answers a plain HTTP proxy request from a mock or forwards it.
func (p *Proxy) handleHTTP(w http.ResponseWriter, r *http.Request) {
	fullURL := requestURL(r)

	if p.interceptor != nil && p.scope.ShouldIntercept(r.Host, r.URL.Path) {
		resp, ok := p.interceptor.Handle(r.Context(), engine.Request{
			Method:  r.Method,
			URL:     fullURL,
			Headers: r.Header.Clone(),
		})
		if ok {
			p.writeMock(w, resp)
			p.logger.Debug("served mock",
				"method", r.Method,
				"url", fullURL,
				"status", resp.Status,
				"body", util.TruncateBody(string(resp.Body), 0),
			)
			return
		}
	}

	p.forward(w, r, fullURL)
}

// writeMock writes an engine response to the client.
func (p *Proxy) writeMock(w http.ResponseWriter, resp *engine.Response) {
	h := w.Header()
	for key, value := range resp.Headers {
		h.Set(key, value)
	}
	removeHopByHopHeaders(h)
	h.Del("Content-Length")

	w.WriteHeader(resp.Status)
	if _, err := w.Write(resp.Body); err != nil {
		p.logger.Debug("error writing mock response", "error", err)
	}
}

// forward sends the request upstream and streams the response back.
func (p *Proxy) forward(w http.ResponseWriter, r *http.Request, fullURL string) {
	outReq, err := http.NewRequestWithContext(r.Context(), r.Method, fullURL, r.Body)
	if err != nil {
		p.logger.Warn("invalid proxy request", "url", fullURL, "error", err)
		httputil.WriteBadRequest(w, "invalid_request", "invalid proxy request URL")
		return
	}
	outReq.ContentLength = r.ContentLength

	copyHeaders(outReq.Header, r.Header)
	removeHopByHopHeaders(outReq.Header)
	outReq.Header.Set("X-Forwarded-For", r.RemoteAddr)
	outReq.Header.Set("X-Forwarded-Host", r.Host)

	resp, err := p.client.Do(outReq)
	if err != nil {
		p.logger.Warn("error forwarding request", "method", r.Method, "url", fullURL, "error", err)
		httputil.WriteBadGateway(w, "upstream_error", "error forwarding request: "+err.Error())
		return
	}
	defer func() { _ = resp.Body.Close() }()

	removeHopByHopHeaders(resp.Header)
	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		p.logger.Debug("error copying upstream body", "url", fullURL, "error", err)
	}

	p.logger.Debug("forwarded", "method", r.Method, "url", fullURL, "status", resp.StatusCode)
}

// requestURL returns the absolute URL of a proxy request. Origin-form
// requests are resolved against the Host header.
func requestURL(r *http.Request) string {
	if r.URL.IsAbs() {
		return r.URL.String()
	}
	return "http://" + r.Host + r.URL.RequestURI()
}

// copyHeaders copies headers from src to dst.
func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

// removeHopByHopHeaders removes headers that should not be forwarded.
func removeHopByHopHeaders(h http.Header) {
	hopByHopHeaders := []string{
		"Connection",
		"Keep-Alive",
		"Proxy-Authenticate",
		"Proxy-Authorization",
		"Proxy-Connection",
		"TE",
		"Trailers",
		"Transfer-Encoding",
		"Upgrade",
	}

	for _, header := range hopByHopHeaders {
		h.Del(header)
	}
}
