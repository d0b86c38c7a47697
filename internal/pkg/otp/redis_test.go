package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/passcode/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRedis struct {
	mock.Mock
}

func (m *mockRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(key, value, expiration)
	cmd := redis.NewStatusCmd(ctx)
	if err := args.Error(0); err != nil {
		cmd.SetErr(err)
	} else {
		cmd.SetVal("OK")
	}
	return cmd
}

func (m *mockRedis) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(key, value, expiration)
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(args.Bool(0))
	if err := args.Error(1); err != nil {
		cmd.SetErr(err)
	}
	return cmd
}

func (m *mockRedis) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(keys)
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(args.Get(0).(int64))
	if err := args.Error(1); err != nil {
		cmd.SetErr(err)
	}
	return cmd
}

func (m *mockRedis) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	called := m.Called(keys, args)
	cmd := redis.NewCmd(ctx)
	cmd.SetVal(called.Get(0))
	if err := called.Error(1); err != nil {
		cmd.SetErr(err)
	}
	return cmd
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	hasher := hash.NewHMACSHA256("test-secret")
	ttl := 10 * time.Minute
	fp, _ := hasher.Hash("123456")

	t.Run("PutStoresFingerprintWithTTL", func(t *testing.T) {

		// Arrange
		rc := new(mockRedis)
		rc.On("Set", "otp:passcode:a@x.io", string(fp), ttl).Return(nil).Once()
		s := NewRedisStore(rc, hasher, ttl)

		// Act
		err := s.Put(ctx, " A@x.io", "123456")

		// Assert
		require.NoError(t, err)
		rc.AssertExpectations(t)
	})

	t.Run("PutError", func(t *testing.T) {

		// Arrange
		rc := new(mockRedis)
		rc.On("Set", mock.Anything, mock.Anything, ttl).Return(errors.New("conn refused")).Once()
		s := NewRedisStore(rc, hasher, ttl)

		// Act
		err := s.Put(ctx, "a@x.io", "123456")

		// Assert
		require.Error(t, err)
	})

	t.Run("PutIfNotLiveUsesSetNX", func(t *testing.T) {

		// Arrange
		rc := new(mockRedis)
		rc.On("SetNX", "otp:passcode:a@x.io", string(fp), ttl).Return(true, nil).Once()
		rc.On("SetNX", "otp:passcode:a@x.io", string(fp), ttl).Return(false, nil).Once()
		s := NewRedisStore(rc, hasher, ttl)

		// Act
		first, errFirst := s.PutIfNotLive(ctx, "A@x.io", "123456")
		second, errSecond := s.PutIfNotLive(ctx, "a@x.io", "123456")

		// Assert
		require.NoError(t, errFirst)
		require.NoError(t, errSecond)
		assert.True(t, first)
		assert.False(t, second)
		rc.AssertExpectations(t)
	})

	t.Run("PutIfNotLiveError", func(t *testing.T) {

		// Arrange
		rc := new(mockRedis)
		rc.On("SetNX", mock.Anything, mock.Anything, ttl).Return(false, errors.New("conn refused")).Once()
		s := NewRedisStore(rc, hasher, ttl)

		// Act
		ok, err := s.PutIfNotLive(ctx, "a@x.io", "123456")

		// Assert
		require.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("HasLive", func(t *testing.T) {

		// Arrange
		rc := new(mockRedis)
		rc.On("Exists", []string{"otp:passcode:a@x.io"}).Return(int64(1), nil).Once()
		rc.On("Exists", []string{"otp:passcode:b@x.io"}).Return(int64(0), nil).Once()
		s := NewRedisStore(rc, hasher, ttl)

		// Act
		a, errA := s.HasLive(ctx, "a@x.io")
		b, errB := s.HasLive(ctx, "b@x.io")

		// Assert
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.True(t, a)
		assert.False(t, b)
	})

	t.Run("ConsumeMatch", func(t *testing.T) {

		// Arrange
		rc := new(mockRedis)
		rc.On("Eval", []string{"otp:passcode:a@x.io"}, []any{string(fp)}).Return(int64(1), nil).Once()
		s := NewRedisStore(rc, hasher, ttl)

		// Act
		ok, err := s.Consume(ctx, "a@x.io", "123456")

		// Assert
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ConsumeMiss", func(t *testing.T) {

		// Arrange
		rc := new(mockRedis)
		rc.On("Eval", []string{"otp:passcode:a@x.io"}, mock.Anything).Return(int64(0), nil).Once()
		s := NewRedisStore(rc, hasher, ttl)

		// Act
		ok, err := s.Consume(ctx, "a@x.io", "000000")

		// Assert
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ConsumeError", func(t *testing.T) {

		// Arrange
		rc := new(mockRedis)
		rc.On("Eval", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()
		s := NewRedisStore(rc, hasher, ttl)

		// Act
		ok, err := s.Consume(ctx, "a@x.io", "123456")

		// Assert
		require.Error(t, err)
		assert.False(t, ok)
	})
}
