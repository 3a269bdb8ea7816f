package util

import (
	"strconv"
	"unicode/utf8"
)

// MaxLogBodySize is the default maximum body size for logging (1KB).
const MaxLogBodySize = 1024

// TruncateBody caps data at maxSize bytes for logging, never splitting a
// UTF-8 sequence, and notes how many bytes were dropped. If maxSize <= 0,
// MaxLogBodySize is used.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogBodySize
	}
	if len(data) <= maxSize {
		return data
	}
	cut := maxSize
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return data[:cut] + "...(" + strconv.Itoa(len(data)-cut) + " more bytes)"
}
