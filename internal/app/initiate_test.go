package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/passcode/internal/pkg/clock"
	"github.com/shandysiswandi/passcode/internal/pkg/config"
	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, yaml string) *App {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &App{ctx: ctx, cancel: cancel, config: cfg}
}

func TestApp_ping(t *testing.T) {

	t.Run("RetriesUntilAwake", func(t *testing.T) {

		// Arrange
		a := newTestApp(t, "database:\n  wake:\n    max_duration_seconds: 5\n")
		calls := 0

		// Act
		err := a.ping("database", func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("GivesUpAfterMaxDuration", func(t *testing.T) {

		// Arrange
		a := newTestApp(t, "database:\n  wake:\n    max_duration_seconds: 1\n")

		// Act
		err := a.ping("database", func(context.Context) error {
			return errors.New("connection refused")
		})

		// Assert
		require.EqualError(t, err, "connection refused")
	})
}

func TestApp_initOTPStore(t *testing.T) {

	t.Run("MemoryByDefault", func(t *testing.T) {

		// Arrange
		a := newTestApp(t, "modules:\n  auth:\n    passcode_ttl_minutes: 10\n")
		a.clock = clock.New()
		a.ins = instrument.NewNoop()

		// Act
		a.initOTPStore()

		// Assert
		assert.IsType(t, &otp.MemoryStore{}, a.otpStore)
	})
}
