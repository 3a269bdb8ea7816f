package template

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/filemock/pkg/logging"
	"github.com/google/uuid"
)

// Engine renders mock remainders. It holds no per-request state and is
// safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// New creates a template engine. A nil logger discards diagnostics.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Engine{logger: logger}
}

var (
	// templateRegex matches {{expression}} patterns with optional whitespace.
	templateRegex = regexp.MustCompile(`\{\{\s*([^}]+?)\s*\}\}`)

	// callPattern splits "name(a, b)" or "name a b" into the function name
	// and its raw argument text.
	callPattern = regexp.MustCompile(`^([A-Za-z_][\w.]*)(?:\((.*)\)|\s+(.+))$`)

	// identPattern matches a name assignable by a preprocessing block.
	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// builtins are the expressions that take no arguments.
var builtins = map[string]func() string{
	"now":               func() string { return time.Now().Format(time.RFC3339) },
	"uuid":              func() string { return uuid.New().String() },
	"uuid.short":        funcUUIDShort,
	"timestamp":         funcUnix,
	"timestamp.unix":    funcUnix,
	"timestamp.iso":     func() string { return time.Now().UTC().Format(time.RFC3339Nano) },
	"timestamp.unix_ms": func() string { return strconv.FormatInt(time.Now().UnixMilli(), 10) },
	"random":            funcRandomHex,
	"random.float":      funcRandomFloat,
	"random.int":        func() string { return funcRandomInt(0, 100) },
	"random.string":     func() string { return funcRandomString(10) },
}

// Process replaces every {{expression}} in template with its value.
// Unknown expressions become the empty string.
func (e *Engine) Process(template string, ctx *Context) (string, error) {
	return templateRegex.ReplaceAllStringFunc(template, func(match string) string {
		return e.evaluate(templateRegex.FindStringSubmatch(match)[1], ctx)
	}), nil
}

func (e *Engine) evaluate(expr string, ctx *Context) string {
	expr = strings.TrimSpace(expr)

	// Preprocessed values shadow built-ins of the same name
	if value, ok := lookupVar(expr, ctx); ok {
		return value
	}
	if fn, ok := builtins[expr]; ok {
		return fn()
	}
	if field, ok := strings.CutPrefix(expr, "request."); ok {
		return evaluateRequest(field, ctx)
	}

	m := callPattern.FindStringSubmatch(expr)
	if m == nil {
		return ""
	}
	if m[3] != "" {
		return e.call(m[1], strings.Fields(m[3]), ctx)
	}
	return e.call(m[1], splitFuncArgs(m[2]), ctx)
}

// call applies a named function to its unresolved arguments.
func (e *Engine) call(name string, args []string, ctx *Context) string {
	switch name {
	case "random.int":
		if len(args) != 2 {
			return ""
		}
		min, err1 := strconv.Atoi(args[0])
		max, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return ""
		}
		return funcRandomInt(min, max)

	case "random.float":
		if len(args) < 2 {
			return ""
		}
		precision := ""
		if len(args) > 2 {
			precision = args[2]
		}
		return funcRandomFloatRange(args[0], args[1], precision)

	case "random.string":
		length := 10
		if len(args) == 1 {
			if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
				length = n
			}
		}
		return funcRandomString(length)

	case "upper", "lower":
		if len(args) != 1 {
			return ""
		}
		value := e.resolveValue(args[0], ctx)
		if name == "upper" {
			return funcUpper(value)
		}
		return funcLower(value)

	case "default":
		if len(args) < 2 {
			return ""
		}
		// The space-separated form splits a quoted fallback on blanks.
		return funcDefault(e.resolveValue(args[0], ctx), parseStringArg(strings.Join(args[1:], " ")))
	}
	return ""
}

// resolveValue resolves a function argument. Quoted strings are literals;
// request paths, built-in names and preprocessed names are evaluated.
// Anything else is taken literally.
func (e *Engine) resolveValue(ref string, ctx *Context) string {
	ref = strings.TrimSpace(ref)
	if isQuoted(ref) {
		return ref[1 : len(ref)-1]
	}
	if value, ok := lookupVar(ref, ctx); ok {
		return value
	}
	if _, ok := builtins[ref]; ok || strings.HasPrefix(ref, "request.") {
		return e.evaluate(ref, ctx)
	}
	return ref
}

// lookupVar resolves name or vars.name against preprocessed values.
func lookupVar(expr string, ctx *Context) (string, bool) {
	if ctx == nil || len(ctx.Vars) == 0 {
		return "", false
	}
	name := strings.TrimPrefix(expr, "vars.")
	if !identPattern.MatchString(name) {
		return "", false
	}
	value, ok := ctx.Vars[name]
	if !ok {
		return "", false
	}
	return formatValue(value), true
}

// evaluateRequest resolves method, url and header.<Name>.
func evaluateRequest(field string, ctx *Context) string {
	if ctx == nil {
		return ""
	}
	switch name, rest, _ := strings.Cut(field, "."); name {
	case "method":
		return ctx.Request.Method
	case "url":
		return ctx.Request.URL
	case "header":
		return ctx.Header(rest)
	}
	return ""
}

func isQuoted(s string) bool {
	return len(s) >= 2 &&
		((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\''))
}

// parseStringArg removes surrounding quotes from a string argument if present.
func parseStringArg(s string) string {
	s = strings.TrimSpace(s)
	if isQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// splitFuncArgs splits comma-separated arguments, keeping commas inside
// quotes.
func splitFuncArgs(s string) []string {
	var (
		args  []string
		start int
		quote byte
	)
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ',':
			args = append(args, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" || len(args) > 0 {
		args = append(args, rest)
	}
	return args
}
