//go:build integration

package messaging

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newIntegrationJetStream(t *testing.T) *JetStream {
	t.Helper()
	ctx := context.Background()

	ctr, err := testcontainers.Run(ctx, "nats:2.10-alpine",
		testcontainers.WithCmd("-js"),
		testcontainers.WithExposedPorts("4222/tcp"),
		testcontainers.WithWaitStrategy(wait.ForLog("Server is ready")),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	url, err := ctr.PortEndpoint(ctx, "4222/tcp", "nats")
	require.NoError(t, err)

	js, err := NewJetStream(ctx, JetStreamConfig{
		NATSConfig: NATSConfig{URL: url, Name: "passcode-test"},
		Stream:     "PASSCODE",
		Subjects:   []string{"passcode_requested"},
		MaxDeliver: 3,
		AckWait:    5 * time.Second,
		NakDelay:   100 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = js.Close() })

	return js
}

func TestJetStream_Integration(t *testing.T) {
	js := newIntegrationJetStream(t)

	t.Run("RedeliversAfterHandlerError", func(t *testing.T) {

		// Arrange
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		var deliveries atomic.Int32
		done := make(chan struct{})
		handler := func(context.Context, Message) error {
			if deliveries.Add(1) == 1 {
				return errors.New("smtp down")
			}
			close(done)
			return nil
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- js.Consume(ctx, "passcode_requested", handler,
				WithQueueGroup("notification"), WithAutoAck(true))
		}()

		// Act
		_, err := js.Publish(ctx, "passcode_requested", OutgoingMessage{Body: []byte(`{"event_id":"e-1"}`)})
		require.NoError(t, err)

		// Assert
		select {
		case <-done:
		case <-ctx.Done():
			t.Fatal("message was not redelivered")
		}
		cancel()
		assert.NoError(t, <-errCh)
		assert.Equal(t, int32(2), deliveries.Load())
	})

	t.Run("PublishOutsideStreamFails", func(t *testing.T) {

		// Act
		_, err := js.Publish(context.Background(), "unbound.subject", OutgoingMessage{Body: []byte("x")})

		// Assert
		assert.Error(t, err)
	})
}
