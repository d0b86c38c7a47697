// Package idempotency guards side effects that may be triggered more than once,
// such as redelivered queue messages, with a small state machine kept in Redis.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("idempotency: operation already in progress")
	ErrAlreadyCompleted  = errors.New("idempotency: operation already completed")
	ErrAlreadyFailed     = errors.New("idempotency: operation already failed")
	ErrInvalidState      = errors.New("idempotency: invalid state")
)

// DefaultPrefix namespaces every key written by a Tracker.
const DefaultPrefix = "passcode:idempotency:"

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = 24 * time.Hour
)

// State is the stored progress of an operation.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateError      State = "error"
)

func (s State) String() string {
	return string(s)
}

// Idempotency runs keyed operations at most once.
type Idempotency interface {
	Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	MarkFailed(ctx context.Context, key string, ttl time.Duration) error
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

// redisClient is the subset of *redis.Client used by Tracker.
type redisClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Tracker implements Idempotency on Redis.
type Tracker struct {
	client redisClient
	prefix string
}

// New returns a Tracker using DefaultPrefix.
func New(client redisClient) *Tracker {
	return &Tracker{client: client, prefix: DefaultPrefix}
}

type Option func(*execOptions)

type execOptions struct {
	lockDuration     time.Duration
	stateTTL         time.Duration
	releaseOnFailure bool
}

// WithLockDuration sets how long the in-progress marker lives.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lockDuration = d }
}

// WithStateTTL sets how long the completed or failed marker lives.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.stateTTL = d }
}

// WithReleaseOnFailure deletes the key when fn fails instead of marking it
// failed, so a later delivery of the same key runs fn again.
func WithReleaseOnFailure() Option {
	return func(o *execOptions) { o.releaseOnFailure = true }
}

// Acquire claims key. StateNone means the caller owns the operation.
func (t *Tracker) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := t.prefix + key

	for attempt := 0; attempt < 2; attempt++ {
		acquired, err := t.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}
		if acquired {
			return StateNone, nil
		}

		current, err := t.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return StateError, err
		}

		switch State(current) {
		case StateInProgress, StateCompleted, StateFailed:
			return State(current), nil
		default:
			return StateError, ErrInvalidState
		}
	}

	return StateError, ErrInvalidState
}

func (t *Tracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return t.client.Set(ctx, t.prefix+key, StateCompleted.String(), ttl).Err()
}

func (t *Tracker) MarkFailed(ctx context.Context, key string, ttl time.Duration) error {
	return t.client.Set(ctx, t.prefix+key, StateFailed.String(), ttl).Err()
}

// Release forgets key so it can be acquired again.
func (t *Tracker) Release(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.prefix+key).Err()
}

// Exec runs fn once per key. A repeated key returns one of the ErrAlready
// errors without calling fn.
func (t *Tracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	o := &execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL <= 0 {
		o.stateTTL = defaultStateTTL
	}

	state, err := t.Acquire(ctx, key, o.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		if o.releaseOnFailure {
			return errors.Join(err, t.Release(ctx, key))
		}
		return errors.Join(err, t.MarkFailed(ctx, key, o.stateTTL))
	}

	return t.MarkCompleted(ctx, key, o.stateTTL)
}
