package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,passcode"`
}

type provenance struct {
	IPAddress string `validate:"omitempty,ip"`
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	t.Run("Valid", func(t *testing.T) {

		// Act
		err := v.Validate(verifyInput{Email: "user@example.com", Code: "012345"})

		// Assert
		assert.NoError(t, err)
	})

	t.Run("PasscodeRule", func(t *testing.T) {
		for _, code := range []string{"12345", "1234567", "12a456", " 12345", "１２３４５６"} {

			// Act
			err := v.Validate(verifyInput{Email: "user@example.com", Code: code})

			// Assert
			var verr V10ValidationError
			require.ErrorAs(t, err, &verr, "code %q", code)
			assert.Equal(t, "Code must be exactly 6 digits", verr.Values()["code"])
		}
	})

	t.Run("MissingFields", func(t *testing.T) {

		// Act
		err := v.Validate(verifyInput{})

		// Assert
		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Values(), "email")
		assert.Contains(t, verr.Values(), "code")
	})

	t.Run("SnakeCaseKeys", func(t *testing.T) {

		// Act
		err := v.Validate(provenance{IPAddress: "not-an-ip"})

		// Assert
		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Values(), "ip_address")
	})
}

func TestV10ValidationError_Error(t *testing.T) {

	// Arrange
	verr := V10ValidationError{"email": "Email is required"}

	// Act
	msg := verr.Error()

	// Assert
	assert.JSONEq(t, `{"email":"Email is required"}`, msg)
	assert.Equal(t, "validation error", V10ValidationError{}.Error())
}
