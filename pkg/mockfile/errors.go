package mockfile

import (
	"errors"
	"fmt"
)

// Structural parse failures. Each is wrapped in a *ParseError.
var (
	ErrMissingSection = errors.New("mock file must have a request line and a status section")
	ErrBadRequestLine = errors.New("request line must be 'METHOD URL'")
	ErrBadStatus      = errors.New("invalid status code")
)

// ParseError reports why a mock file was skipped.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
