package mail

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {

	t.Run("Multipart", func(t *testing.T) {

		// Arrange
		msg := Message{To: []string{"a@x.io"}, Subject: "Your Login Code", TextBody: "plain", HTMLBody: "<b>html</b>"}

		// Act
		raw := string(compose("no-reply@x.io", msg, "b1"))

		// Assert
		assert.Contains(t, raw, "From: no-reply@x.io\r\n")
		assert.Contains(t, raw, "To: a@x.io\r\n")
		assert.Contains(t, raw, "Subject: Your Login Code\r\n")
		assert.Contains(t, raw, "Content-Type: multipart/alternative; boundary=b1\r\n")
		assert.Contains(t, raw, "--b1\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\nplain\r\n")
		assert.Contains(t, raw, "--b1\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n<b>html</b>\r\n")
		assert.True(t, strings.HasSuffix(raw, "--b1--\r\n"))
	})

	t.Run("TextOnly", func(t *testing.T) {

		// Arrange
		msg := Message{To: []string{"a@x.io"}, Cc: []string{"c@x.io"}, Subject: "s", TextBody: "plain"}

		// Act
		raw := string(compose("f@x.io", msg, "unused"))

		// Assert
		assert.Contains(t, raw, "Cc: c@x.io\r\n")
		assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8\r\n\r\nplain")
		assert.NotContains(t, raw, "multipart")
	})

	t.Run("EncodesNonASCIISubject", func(t *testing.T) {

		// Act
		raw := string(compose("f@x.io", Message{To: []string{"a@x.io"}, Subject: "Código"}, "b"))

		// Assert
		assert.Contains(t, raw, "Subject: =?utf-8?q?")
	})
}

func TestResolveSender(t *testing.T) {

	t.Run("NoRecipients", func(t *testing.T) {
		_, err := resolveSender(Message{}, "f@x.io")
		assert.ErrorIs(t, err, ErrNoRecipients)
	})

	t.Run("NoSender", func(t *testing.T) {
		_, err := resolveSender(Message{Bcc: []string{"a@x.io"}}, "")
		assert.ErrorIs(t, err, ErrNoSender)
	})

	t.Run("MessageFromWins", func(t *testing.T) {
		from, err := resolveSender(Message{From: "m@x.io", To: []string{"a@x.io"}}, "f@x.io")
		require.NoError(t, err)
		assert.Equal(t, "m@x.io", from)
	})
}

func TestNewSMTP(t *testing.T) {
	_, err := NewSMTP(SMTPConfig{Host: "smtp.x.io"})
	assert.ErrorIs(t, err, ErrSMTPHostPortRequired)

	s, err := NewSMTP(SMTPConfig{Host: "smtp.x.io", Port: 587, Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "smtp.x.io:587", s.addr)
	assert.NotNil(t, s.auth)
	assert.NoError(t, s.Close())
}

func TestLog_Send(t *testing.T) {

	// Arrange
	var buf bytes.Buffer
	l := NewLog("no-reply@x.io", slog.New(slog.NewJSONHandler(&buf, nil)))

	// Act
	err := l.Send(context.Background(), Message{To: []string{"a@x.io"}, Subject: "Your Login Code", TextBody: "Your login code is: 123456"})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"subject":"Your Login Code"`)
	assert.Contains(t, buf.String(), "123456")
}
