package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake(t *testing.T) {

	t.Run("FrozenUntilAdvanced", func(t *testing.T) {

		// Arrange
		start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		fc := NewFake(start)

		// Act
		first := fc.Now()
		fc.Advance(10 * time.Minute)
		second := fc.Now()

		// Assert
		assert.Equal(t, start, first)
		assert.Equal(t, start.Add(10*time.Minute), second)
	})

	t.Run("Set", func(t *testing.T) {

		// Arrange
		fc := NewFake(time.Unix(0, 0))
		target := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)

		// Act
		fc.Set(target)

		// Assert
		assert.Equal(t, target, fc.Now())
	})
}
