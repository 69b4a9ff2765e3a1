package validator

// Validator validates a struct against its field tags.
type Validator interface {
	// Validate returns an error describing the first set of violations found.
	Validate(data any) error
}
