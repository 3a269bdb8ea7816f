package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/google/uuid"
)

const (
	blockOpen  = "<%"
	blockClose = "%>"
)

// preprocess executes every <% %> block in src, storing assignments in
// ctx.Vars, and returns src with the blocks removed.
func preprocess(src string, ctx *Context) (string, error) {
	var out strings.Builder
	rest := src
	offset := 0

	for {
		start := strings.Index(rest, blockOpen)
		if start < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:start])

		body := rest[start+len(blockOpen):]
		end := strings.Index(body, blockClose)
		blockLine := lineOf(src, offset+start)
		if end < 0 {
			return "", &RenderError{Line: blockLine, Err: ErrUnterminatedBlock}
		}

		if err := runBlock(body[:end], blockLine, ctx); err != nil {
			return "", err
		}

		consumed := start + len(blockOpen) + end + len(blockClose)
		offset += consumed
		rest = rest[consumed:]
	}
}

// runBlock evaluates each assignment line of one block in order.
func runBlock(block string, firstLine int, ctx *Context) error {
	for i, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, source, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		source = strings.TrimSpace(source)
		if !ok || !identPattern.MatchString(name) || source == "" {
			return &RenderError{Line: firstLine + i, Err: fmt.Errorf("%w, got: %q", ErrBadAssignment, line)}
		}

		value, err := evalExpr(source, exprEnv(ctx))
		if err != nil {
			return &RenderError{Line: firstLine + i, Err: err}
		}
		ctx.Vars[name] = value
	}
	return nil
}

// evalExpr compiles and runs one expr-lang expression.
func evalExpr(source string, env map[string]any) (any, error) {
	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", source, err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", source, err)
	}
	return result, nil
}

// exprEnv builds the expression environment from the request and the
// values assigned so far.
func exprEnv(ctx *Context) map[string]any {
	headers := ctx.flatHeaders()
	env := map[string]any{
		"request": map[string]any{
			"method":  ctx.Request.Method,
			"url":     ctx.Request.URL,
			"headers": headers,
		},
		"method":  ctx.Request.Method,
		"url":     ctx.Request.URL,
		"headers": headers,
		"header":  ctx.Header,
		"uuid": func() string {
			return uuid.New().String()
		},
		"timestamp": func() int64 {
			return time.Now().Unix()
		},
	}
	for name, value := range ctx.Vars {
		env[name] = value
	}
	return env
}

// lineOf returns the 1-based line number of byte offset pos in s.
func lineOf(s string, pos int) int {
	return strings.Count(s[:pos], "\n") + 1
}
