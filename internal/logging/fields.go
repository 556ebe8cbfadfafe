package logging

// Field names for structured log entries.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldDocument = "document"
	FieldSource   = "source"

	// Document and render pipeline.
	FieldRevision = "revision"
	FieldBlocks   = "blocks"
	FieldLines    = "lines"
	FieldHits     = "hits"
	FieldMisses   = "misses"
	FieldDuration = "duration"
	FieldLanguage = "language"

	// Configuration.
	FieldConfig = "config"
	FieldLevel  = "level"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
