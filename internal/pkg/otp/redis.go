package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/passcode/internal/pkg/hash"
)

const redisKeyPrefix = "otp:passcode:"

// consumeScript deletes the key only when the stored fingerprint matches.
// Expired keys are already gone, so a miss covers both absent and expired.
const consumeScript = `
local stored = redis.call('GET', KEYS[1])
if not stored then
  return 0
end
if stored == ARGV[1] then
  redis.call('DEL', KEYS[1])
  return 1
end
return 0
`

// redisCmdable is the subset of *redis.Client used by RedisStore.
type redisCmdable interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}

// RedisStore is a Store shared by every instance through Redis. Codes are
// kept as HMAC fingerprints and expire through the key TTL.
type RedisStore struct {
	client redisCmdable
	hasher hash.Hash
	ttl    time.Duration
}

// NewRedisStore creates a store whose records live for ttl.
func NewRedisStore(client redisCmdable, hasher hash.Hash, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, hasher: hasher, ttl: ttl}
}

func (s *RedisStore) key(identity string) string {
	return redisKeyPrefix + NormalizeIdentity(identity)
}

func (s *RedisStore) fingerprint(code string) (string, error) {
	sum, err := s.hasher.Hash(code)
	if err != nil {
		return "", fmt.Errorf("otp: hash code: %w", err)
	}
	return string(sum), nil
}

// Put stores the code fingerprint, overwriting any previous value and TTL.
func (s *RedisStore) Put(ctx context.Context, identity, code string) error {
	fp, err := s.fingerprint(code)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key(identity), fp, s.ttl).Err(); err != nil {
		return fmt.Errorf("otp: redis set: %w", err)
	}
	return nil
}

// PutIfNotLive stores the fingerprint with SET NX PX, so only one caller
// wins while a key is live.
func (s *RedisStore) PutIfNotLive(ctx context.Context, identity, code string) (bool, error) {
	fp, err := s.fingerprint(code)
	if err != nil {
		return false, err
	}

	ok, err := s.client.SetNX(ctx, s.key(identity), fp, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("otp: redis setnx: %w", err)
	}
	return ok, nil
}

// HasLive reports whether the key still exists.
func (s *RedisStore) HasLive(ctx context.Context, identity string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(identity)).Result()
	if err != nil {
		return false, fmt.Errorf("otp: redis exists: %w", err)
	}
	return n > 0, nil
}

// Consume compares and deletes atomically in a Lua script.
func (s *RedisStore) Consume(ctx context.Context, identity, candidate string) (bool, error) {
	fp, err := s.fingerprint(candidate)
	if err != nil {
		return false, err
	}

	n, err := s.client.Eval(ctx, consumeScript, []string{s.key(identity)}, fp).Int64()
	if err != nil {
		return false, fmt.Errorf("otp: redis consume: %w", err)
	}
	return n == 1, nil
}
