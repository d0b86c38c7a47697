// Package uid generates identifiers: snowflake numbers for primary keys,
// UUIDv7 strings for correlation ids, and random object ids for secrets
// handed to clients.
package uid

// NumberID generates unique int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
