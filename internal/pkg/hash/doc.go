// Package hash derives one-way fingerprints of secrets before they are
// persisted.
//
// Session tokens and pending passcodes are stored only as keyed hashes, so a
// leaked database row or cache dump cannot be replayed. Lookups hash the
// presented value and search by the result.
package hash
