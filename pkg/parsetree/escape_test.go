package parsetree

import (
	"strings"
	"testing"
)

func quoteToString(t *testing.T, s string) string {
	t.Helper()

	var sb strings.Builder
	if err := writeQuoted(&sb, s); err != nil {
		t.Fatalf("writeQuoted failed: %v", err)
	}
	return sb.String()
}

func TestWriteQuoted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", `""`},
		{"plain ascii", "hello world", `"hello world"`},
		{"double quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"carriage return", "a\rb", `"a\rb"`},
		{"backspace", "a\bb", `"a\bb"`},
		{"form feed", "a\fb", `"a\fb"`},
		{"null byte", "a\x00b", `"a\u0000b"`},
		{"vertical tab", "a\x0bb", `"a\u000bb"`},
		{"escape byte", "a\x1bb", `"a\u001bb"`},
		{"unit separator", "a\x1fb", `"a\u001fb"`},
		{"delete", "a\x7fb", `"a\u007fb"`},
		{"non-ascii passthrough", "日本語テキスト", `"日本語テキスト"`},
		{"emoji passthrough", "ok \U0001F389", "\"ok \U0001F389\""},
		{"mixed", "a\"\\\n日", `"a\"\\\n日"`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := quoteToString(t, testCase.input)
			if got != testCase.expected {
				t.Errorf("expected %s, got %s", testCase.expected, got)
			}
		})
	}
}

func TestWriteQuotedAllControlBytes(t *testing.T) {
	t.Parallel()

	// Every byte below 0x20 must be escaped one way or another.
	for b := byte(0); b < 0x20; b++ {
		got := quoteToString(t, string([]byte{b}))
		if !strings.HasPrefix(got, `"\`) {
			t.Errorf("byte 0x%02x not escaped: %s", b, got)
		}
	}
}
