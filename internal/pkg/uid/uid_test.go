package uid

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectID_Generate(t *testing.T) {

	t.Run("HexOf32Bytes", func(t *testing.T) {

		// Arrange
		g := NewObjectID()

		// Act
		id := g.Generate()

		// Assert
		assert.Len(t, id, ObjectIDSize*2)
		_, err := hex.DecodeString(id)
		assert.NoError(t, err)
	})

	t.Run("TimestampPrefixAndUnique", func(t *testing.T) {

		// Arrange
		at := time.UnixMilli(0x0102030405)
		g := &ObjectID{now: func() time.Time { return at }}

		// Act
		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			id := g.Generate()
			require.Equal(t, "000102030405", id[:12])
			seen[id] = struct{}{}
		}

		// Assert
		assert.Len(t, seen, 1000)
	})
}

func TestSnowflake_Generate(t *testing.T) {

	t.Run("InvalidNode", func(t *testing.T) {

		// Act
		_, err := NewSnowflake(4096)

		// Assert
		assert.Error(t, err)
	})

	t.Run("Increasing", func(t *testing.T) {

		// Arrange
		sf, err := NewSnowflake(1)
		require.NoError(t, err)

		// Act
		a := sf.Generate()
		b := sf.Generate()

		// Assert
		assert.Positive(t, a)
		assert.Greater(t, b, a)
	})
}

func TestUUID_Generate(t *testing.T) {

	// Act
	id := NewUUID().Generate()

	// Assert
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
