package logging

// Field names for structured logging.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldConfig = "config"

	FieldMode    = "mode"
	FieldQuery   = "query"
	FieldTheme   = "theme"
	FieldTerm    = "term"
	FieldMatches = "matches"
	FieldBytes   = "bytes"

	FieldVersion = "version"
)
