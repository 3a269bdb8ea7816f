package template

import (
	"errors"
	"fmt"
)

// Preprocessing failures. Each is wrapped in a *RenderError.
var (
	ErrUnterminatedBlock = errors.New("unterminated <% block")
	ErrBadAssignment     = errors.New("preprocessing line must be 'name = expression'")
)

// RenderError reports a failed preprocessing step.
type RenderError struct {
	// Line is the 1-based line of the remainder where the failure occurred.
	Line int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
