package util

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "abc", 10, "abc"},
		{"ascii cut", "abcdef", 3, "abc"},
		{"backs off mid rune", "aé", 2, "a"},
		{"keeps whole rune", "aéb", 3, "aé"},
		{"cjk", "日本語", 4, "日"},
		{"zero", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateUTF8(tt.in, tt.n))
		})
	}
}

func TestTruncateUTF8_AlwaysValid(t *testing.T) {
	s := strings.Repeat("é日a", 50)
	for n := 0; n <= len(s); n++ {
		out := TruncateUTF8(s, n)
		assert.True(t, utf8.ValidString(out), "n=%d", n)
		assert.LessOrEqual(t, len(out), n)
	}
}
