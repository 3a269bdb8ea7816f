package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		maxSize int
		want    string
	}{
		{"fits", `{"ok":true}`, 11, `{"ok":true}`},
		{"cut", `{"ok":true}`, 5, `{"ok"...(6 more bytes)`},
		{"empty", "", 5, ""},
		{"keeps runes whole", "héllo", 2, "h...(5 more bytes)"},
		{"default limit", strings.Repeat("a", MaxLogBodySize+3), 0, strings.Repeat("a", MaxLogBodySize) + "...(3 more bytes)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TruncateBody(tt.data, tt.maxSize))
		})
	}
}
