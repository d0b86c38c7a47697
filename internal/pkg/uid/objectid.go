package uid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// ObjectIDSize is the number of raw bytes in an object id.
const ObjectIDSize = 32

// ObjectID generates opaque 64-character hex ids: a 6-byte millisecond
// timestamp followed by 26 bytes from crypto/rand. Values are unguessable and
// safe to use as bearer secrets (session tokens).
type ObjectID struct {
	now func() time.Time
}

// NewObjectID returns an object id generator.
func NewObjectID() *ObjectID {
	return &ObjectID{now: time.Now}
}

// Generate returns a new hex encoded object id.
func (g *ObjectID) Generate() string {
	var raw [ObjectIDSize]byte

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(g.now().UnixMilli()))
	copy(raw[:6], ts[2:])

	// crypto/rand.Read never returns an error on supported platforms
	_, _ = rand.Read(raw[6:])

	return hex.EncodeToString(raw[:])
}
