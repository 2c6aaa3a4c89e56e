// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"

	// Render fields.
	FieldEvents   = "events"
	FieldBytes    = "bytes"
	FieldOffset   = "offset"
	FieldPrevFile = "prev_file"

	// Search fields.
	FieldQuery   = "query"
	FieldMatcher = "matcher"
	FieldMatches = "matches"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
