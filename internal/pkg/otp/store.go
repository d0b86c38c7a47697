package otp

import (
	"context"
	"strings"
)

// Store keeps one pending passcode per identity.
//
// Implementations normalize the identity, make every operation atomic for the
// identity it touches, and treat a record whose expiry is not after now as
// absent.
type Store interface {
	// Put records code for identity, replacing any previous record.
	Put(ctx context.Context, identity, code string) error

	// PutIfNotLive records code only when identity has no unexpired record.
	// It reports whether the code was stored. The check and the write are one
	// atomic step.
	PutIfNotLive(ctx context.Context, identity, code string) (bool, error)

	// HasLive reports whether identity has an unexpired record.
	HasLive(ctx context.Context, identity string) (bool, error)

	// Consume redeems candidate for identity. It returns true and deletes the
	// record on a match. An expired record is deleted and false returned. A
	// mismatch returns false and keeps the record.
	Consume(ctx context.Context, identity, candidate string) (bool, error)
}

// NormalizeIdentity trims and lower-cases an identity (email).
func NormalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}
