// Package search implements query matching over a document's flattened text
// and the highlight tokenizer that feeds match spans back into the
// parse-tree serializer.
//
// Searching is a two-pass affair: one serialization pass with an Index
// accumulator collects the flat text and its mapping back to source byte
// ranges, the query runs over that text, and a second pass with a
// HighlightTokenizer wraps the matched spans in highlight nodes.
package search

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects how a query is compiled.
type Mode string

// Matcher modes.
const (
	ModeSmartCase          Mode = "smart-case"
	ModeCaseSensitive      Mode = "case-sensitive"
	ModeCaseInsensitive    Mode = "case-insensitive"
	ModeCaseSensitiveRegex Mode = "case-sensitive-regex"
)

// ParseMode validates a mode name from configuration or a CLI flag.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSmartCase, ModeCaseSensitive, ModeCaseInsensitive, ModeCaseSensitiveRegex:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown search matcher %q", s)
	}
}

// Matcher is a compiled search query. The zero value and any matcher built
// from an empty query match nothing.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher compiles query under the given mode. Smart case is sensitive
// only when the query contains an uppercase letter. Literal modes quote the
// query; only ModeCaseSensitiveRegex interprets it as a regular expression.
func NewMatcher(query string, mode Mode) (*Matcher, error) {
	if query == "" {
		return &Matcher{}, nil
	}

	var pattern string
	switch mode {
	case ModeCaseSensitive:
		pattern = regexp.QuoteMeta(query)
	case ModeCaseInsensitive:
		pattern = "(?i)" + regexp.QuoteMeta(query)
	case ModeCaseSensitiveRegex:
		pattern = query
	case ModeSmartCase, "":
		pattern = regexp.QuoteMeta(query)
		if strings.ToLower(query) == query {
			pattern = "(?i)" + pattern
		}
	default:
		return nil, fmt.Errorf("unknown search matcher %q", mode)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile search query: %w", err)
	}
	return &Matcher{re: re}, nil
}

// FindAll returns the half-open index pairs of every non-empty match in text.
func (m *Matcher) FindAll(text string) [][]int {
	if m == nil || m.re == nil {
		return nil
	}

	locs := m.re.FindAllStringIndex(text, -1)
	out := locs[:0]
	for _, loc := range locs {
		if loc[1] > loc[0] {
			out = append(out, loc)
		}
	}
	return out
}
