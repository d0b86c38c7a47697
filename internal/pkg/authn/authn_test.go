package authn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipal(t *testing.T) {

	t.Run("RoundTrip", func(t *testing.T) {

		// Arrange
		p := &Principal{SessionID: 1, UserID: 2, Email: "a@x.io", Role: "user"}

		// Act
		got := GetPrincipal(SetPrincipal(context.Background(), p))

		// Assert
		assert.Same(t, p, got)
	})

	t.Run("Missing", func(t *testing.T) {
		assert.Nil(t, GetPrincipal(context.Background()))
	})
}
