package proxy

import (
	"strings"

	"github.com/gobwas/glob"
)

// Scope defines include/exclude patterns deciding which requests are
// offered to the mock engine. Out-of-scope requests are always forwarded.
type Scope struct {
	includeHosts []glob.Glob
	excludeHosts []glob.Glob
	includePaths []glob.Glob
	excludePaths []glob.Glob
}

// ScopeConfig holds the raw shell-style patterns for a Scope.
type ScopeConfig struct {
	IncludeHosts []string // Intercept only these hosts (empty = all)
	ExcludeHosts []string // Never intercept these hosts
	IncludePaths []string // Intercept only if path matches (empty = all)
	ExcludePaths []string // Never intercept if path matches
}

// NewScope creates an empty scope (intercepts everything).
func NewScope() *Scope {
	return &Scope{}
}

// CompileScope compiles cfg. Host patterns are matched case-insensitively.
func CompileScope(cfg ScopeConfig) (*Scope, error) {
	s := &Scope{}
	var err error
	if s.includeHosts, err = compileAll(cfg.IncludeHosts, true); err != nil {
		return nil, err
	}
	if s.excludeHosts, err = compileAll(cfg.ExcludeHosts, true); err != nil {
		return nil, err
	}
	if s.includePaths, err = compileAll(cfg.IncludePaths, false); err != nil {
		return nil, err
	}
	if s.excludePaths, err = compileAll(cfg.ExcludePaths, false); err != nil {
		return nil, err
	}
	return s, nil
}

// ShouldIntercept determines if a request is offered to the engine.
// Precedence:
// 1. If matches ANY exclude pattern → NOT intercepted
// 2. If include patterns exist AND matches NONE → NOT intercepted
// 3. Otherwise → intercepted
func (s *Scope) ShouldIntercept(host, path string) bool {
	if s == nil {
		return true
	}
	host = strings.ToLower(stripPort(host))

	if matchAny(s.excludeHosts, host) || matchAny(s.excludePaths, path) {
		return false
	}
	if len(s.includeHosts) > 0 && !matchAny(s.includeHosts, host) {
		return false
	}
	if len(s.includePaths) > 0 && !matchAny(s.includePaths, path) {
		return false
	}
	return true
}

func compileAll(patterns []string, lower bool) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		if lower {
			p = strings.ToLower(p)
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}

// stripPort removes a trailing :port from host, leaving IPv6 brackets intact.
func stripPort(host string) string {
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		return host[:i]
	}
	return host
}
