package uid

// StringID generates string identifiers.
type StringID interface {
	// Generate returns a new identifier.
	Generate() string
}
