package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/passcode/internal/auth/usecase"
	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMail struct{ mock.Mock }

func (m *mockMail) Close() error { return nil }

func (m *mockMail) Send(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func TestEmail_NotifyPasscode(t *testing.T) {

	t.Run("RendersAndSends", func(t *testing.T) {

		// Arrange
		client := new(mockMail)
		var sent mail.Message
		client.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			sent = args.Get(1).(mail.Message)
		}).Return(nil)
		e := NewEmail(client, instrument.NewNoop())

		// Act
		err := e.NotifyPasscode(context.Background(), usecase.PasscodeNotification{
			Email: "a@x.io", Code: "123456", ExpiresIn: 15 * time.Minute,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"a@x.io"}, sent.To)
		assert.Equal(t, "Your Login Code", sent.Subject)
		assert.Contains(t, sent.TextBody, "Your login code is: 123456")
		assert.Contains(t, sent.TextBody, "expire in 15 minutes")
	})

	t.Run("SendFailure", func(t *testing.T) {

		// Arrange
		client := new(mockMail)
		client.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp: 550"))
		e := NewEmail(client, instrument.NewNoop())

		// Act
		err := e.NotifyPasscode(context.Background(), usecase.PasscodeNotification{Email: "a@x.io", Code: "123456"})

		// Assert
		assert.EqualError(t, err, "smtp: 550")
	})
}
