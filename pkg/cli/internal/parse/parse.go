// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"net/http"
	"strings"
)

// KeyValue parses a "key:value" string on the first colon.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(s, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// Headers parses repeated "Name: value" flags into an http.Header.
// A repeated name adds another value.
func Headers(headers []string) (http.Header, error) {
	result := make(http.Header, len(headers))
	for _, h := range headers {
		key, value, ok := KeyValue(h)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q (expected 'Name: value')", h)
		}
		result.Add(key, value)
	}
	return result, nil
}
