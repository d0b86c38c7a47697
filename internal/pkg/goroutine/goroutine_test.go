package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	ctx := context.Background()

	t.Run("CollectsErrors", func(t *testing.T) {

		// Arrange
		m := NewManager(4)
		errBoom := errors.New("boom")

		// Act
		m.Go(ctx, func(context.Context) error { return nil })
		m.Go(ctx, func(context.Context) error { return errBoom })
		err := m.Wait()

		// Assert
		require.ErrorIs(t, err, errBoom)
	})

	t.Run("RecoversPanic", func(t *testing.T) {

		// Arrange
		m := NewManager(1)

		// Act
		started := m.Go(ctx, func(context.Context) error { panic("kaboom") })
		err := m.Wait()

		// Assert
		assert.True(t, started)
		assert.NoError(t, err)
	})

	t.Run("RejectsWhenFull", func(t *testing.T) {

		// Arrange
		m := NewManager(1)
		release := make(chan struct{})
		m.Go(ctx, func(context.Context) error { <-release; return nil })

		// Act
		started := m.Go(ctx, func(context.Context) error { return nil })
		close(release)

		// Assert
		assert.False(t, started)
		assert.NoError(t, m.Wait())
	})

	t.Run("RejectsAfterWait", func(t *testing.T) {

		// Arrange
		m := NewManager(2)
		require.NoError(t, m.Wait())
		var ran atomic.Bool

		// Act
		started := m.Go(ctx, func(context.Context) error { ran.Store(true); return nil })

		// Assert
		assert.False(t, started)
		assert.False(t, ran.Load())
	})

	t.Run("SkipsCanceledContext", func(t *testing.T) {

		// Arrange
		m := NewManager(2)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		var ran atomic.Bool

		// Act
		m.Go(cctx, func(context.Context) error { ran.Store(true); return nil })
		require.NoError(t, m.Wait())

		// Assert
		assert.False(t, ran.Load())
	})

	t.Run("NilManager", func(t *testing.T) {

		// Arrange
		var m *Manager

		// Act
		started := m.Go(ctx, func(context.Context) error { return nil })

		// Assert
		assert.False(t, started)
		assert.NoError(t, m.Wait())
	})
}
