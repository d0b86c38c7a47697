package instrument

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMasker(t *testing.T) {
	m := NewMasker([]string{" Code ", "set-cookie", ""})

	t.Run("Data", func(t *testing.T) {

		// Arrange
		in := map[string]any{
			"email": "a@x.io",
			"code":  "123456",
			"items": []any{map[string]any{"CODE": "1"}},
		}

		// Act
		out := m.Data(in).(map[string]any)

		// Assert
		assert.Equal(t, "a@x.io", out["email"])
		assert.Equal(t, MaskedValue, out["code"])
		assert.Equal(t, MaskedValue, out["items"].([]any)[0].(map[string]any)["CODE"])
	})

	t.Run("JSONRejectsPlainText", func(t *testing.T) {
		_, ok := m.JSON([]byte("hello"))
		assert.False(t, ok)
	})

	t.Run("Header", func(t *testing.T) {

		// Arrange
		h := http.Header{}
		h.Set("Set-Cookie", "passcode.session_token=abc")
		h.Set("Content-Type", "application/json")

		// Act
		out := m.Header(h)

		// Assert
		assert.Equal(t, MaskedValue, out.Get("Set-Cookie"))
		assert.Equal(t, "application/json", out.Get("Content-Type"))
		assert.Equal(t, "passcode.session_token=abc", h.Get("Set-Cookie"))
	})

	t.Run("EmptyMasker", func(t *testing.T) {
		var nilMasker *Masker
		assert.True(t, nilMasker.Empty())
		assert.False(t, nilMasker.Sensitive("code"))
	})
}
