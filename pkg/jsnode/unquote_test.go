package jsnode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"simple escapes", `a\tb\nc\\d`, "a\tb\nc\\d"},
		{"quotes", `\'\"`, `'"`},
		{"null", `a\0b`, "a\x00b"},
		{"hex", `\x41\x7a`, "Az"},
		{"unicode", `\u00e9`, "é"},
		{"code point", `\u{1F9ED}`, "🧭"},
		{"surrogate pair", `\uD83E\uDDED`, "🧭"},
		{"line continuation", "a\\\nb", "ab"},
		{"crlf continuation", "a\\\r\nb", "ab"},
		{"unknown escape", `\q`, "q"},
		{"malformed hex kept", `\xZ1`, "xZ1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unquote(tt.in))
		})
	}
}
