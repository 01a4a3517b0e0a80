// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldBytes      = "bytes"

	// Configuration fields.
	FieldConfig    = "config"
	FieldWorkspace = "workspace"
	FieldDebounce  = "debounce"
	FieldFlavor    = "flavor"
	FieldColor     = "color"

	// Classification fields.
	FieldSpans    = "spans"
	FieldBlocks   = "blocks"
	FieldLanguage = "language"

	// Session fields.
	FieldTargets = "targets"
	FieldTarget  = "target"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
