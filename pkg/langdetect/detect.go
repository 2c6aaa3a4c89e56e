// Package langdetect guesses the language of fenced code blocks that carry
// no info string, for display in document outlines. It uses go-enry over the
// block content. Detection never influences the wire output; a fence without
// an info string stays bare there.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// candidates are the languages the classifier chooses between. Markdown
// previews overwhelmingly embed these; an open-ended guess over enry's full
// language set is wrong too often to display.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "TOML", "Dockerfile",
}

// Detect guesses the language of a code snippet and returns it as a
// lowercase fence tag. It returns "" when no guess is confident enough to
// display.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}

	if lang := detectByHint(trimmed); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return fenceTag(lang)
	}

	return ""
}

// detectByHint catches constructs that identify a language on their own,
// where the statistical classifier is unnecessary.
func detectByHint(trimmed []byte) string {
	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")) && bytes.Contains(trimmed, []byte("func ")):
		return "go"
	case bytes.HasPrefix(trimmed, []byte("fn main()")) || bytes.Contains(trimmed, []byte("println!")):
		return "rust"
	case bytes.HasPrefix(trimmed, []byte("#!/")):
		return "bash"
	case bytes.HasPrefix(trimmed, []byte("<!DOCTYPE html")) || bytes.HasPrefix(trimmed, []byte("<html")):
		return "html"
	case jsonShaped(trimmed):
		return "json"
	case sqlShaped(trimmed):
		return "sql"
	default:
		return ""
	}
}

func jsonShaped(trimmed []byte) bool {
	return (trimmed[0] == '{' || trimmed[0] == '[') &&
		bytes.Contains(trimmed, []byte(`":`))
}

func sqlShaped(trimmed []byte) bool {
	upper := strings.ToUpper(string(trimmed))
	for _, kw := range []string{"SELECT ", "INSERT INTO ", "UPDATE ", "DELETE FROM ", "CREATE TABLE "} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

// fenceTag converts an enry language name to the tag conventionally used in
// fence info strings.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
