package ssh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect string
	}{
		{"normal short name", "Alice", "Alice"},
		{"exactly 16 chars", "1234567890123456", "1234567890123456"},
		{"long name truncated", "ThisIsAVeryLongUsername", "ThisIsAVeryLongU"},
		{"control chars stripped", "he\x00ll\x1bo", "hello"},
		{"ansi escape partial", "he\x1b[31mllo", "he[31mllo"},
		{"empty input", "", ""},
		{"pure control chars", "\x00\x01\x02\x1b", ""},
		{"multi-byte runes truncated on a rune boundary", "日本語のテストです", "日本語のテ"},
		{"emoji truncated on a rune boundary", "🎮Player🎮Name", "🎮Player🎮Na"},
		{"tabs stripped", "hello\tworld", "helloworld"},
		{"invalid utf-8 dropped", "a\xffb", "ab"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, SanitizeName(tc.input))
		})
	}
}

func TestTermFor(t *testing.T) {
	cases := []struct {
		name string
		env  []string
		want string
	}{
		{"allowed", []string{"LANG=C", "TERM=tmux"}, "tmux"},
		{"missing", []string{"LANG=C"}, DefaultTerm},
		{"unknown term", []string{"TERM=evil-term"}, DefaultTerm},
		{"path traversal", []string{"TERM=../../../etc/passwd"}, DefaultTerm},
		{"empty", []string{"TERM="}, DefaultTerm},
		{"first TERM wins", []string{"TERM=xterm-kitty", "TERM=vt100"}, DefaultTerm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TermFor(tc.env))
		})
	}
}
