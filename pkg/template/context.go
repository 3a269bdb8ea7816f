package template

import (
	"net/http"
	"strings"
)

// Context holds all data available to a template.
type Context struct {
	Request RequestContext
	// Vars holds values assigned by preprocessing blocks.
	Vars map[string]any
}

// RequestContext is the read-only view of the intercepted request.
type RequestContext struct {
	Method  string
	URL     string
	Headers http.Header
}

// NewContext creates a template context for a request.
func NewContext(method, url string, headers http.Header) *Context {
	if headers == nil {
		headers = make(http.Header)
	}
	return &Context{
		Request: RequestContext{
			Method:  method,
			URL:     url,
			Headers: headers,
		},
		Vars: make(map[string]any),
	}
}

// Header returns the first value of the named request header. Lookup is
// case-insensitive, including for header maps that were not canonicalized.
func (c *Context) Header(name string) string {
	if c == nil {
		return ""
	}
	if v := c.Request.Headers.Get(name); v != "" {
		return v
	}
	for key, values := range c.Request.Headers {
		if strings.EqualFold(key, name) && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// flatHeaders returns the request headers with only their first value.
func (c *Context) flatHeaders() map[string]string {
	flat := make(map[string]string, len(c.Request.Headers))
	for key, values := range c.Request.Headers {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}
	return flat
}
