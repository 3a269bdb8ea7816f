package template

import "strings"

// BodySeparator is the line that divides preprocessing from the body.
const BodySeparator = "---\n"

// Render executes remainder against ctx: preprocessing blocks first, then
// {{expression}} substitution. ctx.Vars receives the assigned values.
func (e *Engine) Render(remainder string, ctx *Context) (string, error) {
	if ctx == nil {
		ctx = NewContext("", "", nil)
	}
	if ctx.Vars == nil {
		ctx.Vars = make(map[string]any)
	}

	text, err := preprocess(remainder, ctx)
	if err != nil {
		return "", err
	}
	return e.Process(text, ctx)
}

// RenderBody renders remainder and extracts the response body. A render
// failure is logged and the raw remainder is used instead.
func (e *Engine) RenderBody(remainder string, ctx *Context) string {
	rendered, err := e.Render(remainder, ctx)
	if err != nil {
		url := ""
		if ctx != nil {
			url = ctx.Request.URL
		}
		e.logger.Warn("template render failed, using raw remainder", "url", url, "error", err)
		rendered = remainder
	}
	return ExtractBody(rendered)
}

// ExtractBody returns the text after the first "---" line. The newline
// ending the separator line is not part of the body. Without a separator
// the whole rendered text is the body.
func ExtractBody(rendered string) string {
	if strings.HasPrefix(rendered, BodySeparator) {
		return rendered[len(BodySeparator):]
	}
	if _, body, found := strings.Cut(rendered, "\n"+BodySeparator); found {
		return body
	}
	return rendered
}
