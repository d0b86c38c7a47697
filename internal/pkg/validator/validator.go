package validator

// Validator validates a struct and returns a field keyed error on failure.
type Validator interface {
	Validate(data any) error
}
