// Package config defines core configuration types for mdtree.
// These types are pure data structures; discovery and loading live in the
// configloader package.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdtree/pkg/search"
)

// SearchConfig controls how search queries are matched.
type SearchConfig struct {
	// Matcher is one of "smart-case", "case-sensitive", "case-insensitive",
	// "case-sensitive-regex".
	Matcher string `yaml:"matcher"`
}

// RenderConfig controls parse-tree rendering.
type RenderConfig struct {
	// HeadingIDs adds slug ids to heading nodes.
	HeadingIDs bool `yaml:"heading_ids"`
}

// Config is the root configuration structure for mdtree.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Render RenderConfig `yaml:"render"`

	// FileExtensions lists the extensions treated as Markdown, without the
	// leading dot.
	FileExtensions []string `yaml:"file_extensions"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	// CLI-level options (not persisted to config files).

	// Debug forces debug logging regardless of LogLevel.
	Debug bool `yaml:"-"`

	// Color is the terminal color mode: "auto", "always", or "never".
	Color string `yaml:"-"`
}

// NewConfig returns a Config with the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Search:         SearchConfig{Matcher: string(search.ModeSmartCase)},
		Render:         RenderConfig{HeadingIDs: false},
		FileExtensions: []string{"md", "mkd", "markdown"},
		LogLevel:       "info",
		Color:          "auto",
	}
}

// Validate checks the configuration for values no component can act on.
func (c *Config) Validate() error {
	if _, err := search.ParseMode(c.Search.Matcher); err != nil {
		return fmt.Errorf("search.matcher: %w", err)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}

	if len(c.FileExtensions) == 0 {
		return fmt.Errorf("file_extensions: must list at least one extension")
	}
	for _, ext := range c.FileExtensions {
		if ext == "" || strings.HasPrefix(ext, ".") {
			return fmt.Errorf("file_extensions: %q must be a bare extension without the dot", ext)
		}
	}

	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color: unknown mode %q", c.Color)
	}

	return nil
}

// MatcherMode returns the configured search mode. Call Validate first; an
// unknown matcher falls back to smart case here.
func (c *Config) MatcherMode() search.Mode {
	mode, err := search.ParseMode(c.Search.Matcher)
	if err != nil {
		return search.ModeSmartCase
	}
	return mode
}

// IsMarkdownFile reports whether path has one of the configured Markdown
// extensions. The comparison is case-insensitive.
func (c *Config) IsMarkdownFile(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	for _, want := range c.FileExtensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
