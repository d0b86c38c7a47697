//go:build integration

package otp

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/passcode/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newIntegrationRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestRedisStore_Integration(t *testing.T) {
	ctx := context.Background()
	client := newIntegrationRedis(t)

	t.Run("ConsumeOnce", func(t *testing.T) {

		// Arrange
		s := NewRedisStore(client, hash.NewHMACSHA256("k"), time.Minute)
		require.NoError(t, s.Put(ctx, "A@x.io", "123456"))

		// Act
		live, errLive := s.HasLive(ctx, "a@x.io")
		wrong, errWrong := s.Consume(ctx, "a@x.io", "000000")
		first, errFirst := s.Consume(ctx, "a@x.io", "123456")
		second, errSecond := s.Consume(ctx, "a@x.io", "123456")

		// Assert
		require.NoError(t, errLive)
		require.NoError(t, errWrong)
		require.NoError(t, errFirst)
		require.NoError(t, errSecond)
		assert.True(t, live)
		assert.False(t, wrong)
		assert.True(t, first)
		assert.False(t, second)
	})

	t.Run("Expires", func(t *testing.T) {

		// Arrange
		s := NewRedisStore(client, hash.NewHMACSHA256("k"), time.Second)
		require.NoError(t, s.Put(ctx, "b@x.io", "654321"))

		// Act
		time.Sleep(1500 * time.Millisecond)
		live, errLive := s.HasLive(ctx, "b@x.io")
		ok, errConsume := s.Consume(ctx, "b@x.io", "654321")

		// Assert
		require.NoError(t, errLive)
		require.NoError(t, errConsume)
		assert.False(t, live)
		assert.False(t, ok)
	})

	t.Run("ConcurrentPutIfNotLiveWinsOnce", func(t *testing.T) {

		// Arrange
		s := NewRedisStore(client, hash.NewHMACSHA256("k"), time.Minute)
		var wins atomic.Int32
		var wg sync.WaitGroup

		// Act
		for range 32 {
			wg.Go(func() {
				ok, err := s.PutIfNotLive(ctx, "c@x.io", "123456")
				if err == nil && ok {
					wins.Add(1)
				}
			})
		}
		wg.Wait()

		// Assert
		assert.Equal(t, int32(1), wins.Load())
	})
}
