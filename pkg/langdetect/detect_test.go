package langdetect

import "testing"

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \n\t\n", ""},
		{"shebang bash", "#!/bin/bash\necho hi\n", "bash"},
		{"go package", "package main\n\nfunc main() {}\n", "go"},
		{"rust main", "fn main() {\n    println!(\"hi\");\n}\n", "rust"},
		{"html doctype", "<!DOCTYPE html>\n<p>hi</p>\n", "html"},
		{"json object", `{"key": "value", "n": 1}`, "json"},
		{"sql select", "SELECT id FROM users WHERE age > 21;", "sql"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := Detect([]byte(testCase.content))
			if got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestHintLayerStaysSilentOnProse(t *testing.T) {
	t.Parallel()

	for _, prose := range []string{
		"just some words",
		"a sentence. and another one.",
		"1234 5678",
	} {
		if got := detectByHint([]byte(prose)); got != "" {
			t.Errorf("hint layer guessed %q for %q", got, prose)
		}
	}
}
