package otp

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"sync"
	"time"

	"github.com/shandysiswandi/passcode/internal/pkg/clock"
	"go.opentelemetry.io/otel/metric"
)

// DefaultSweepInterval is how often Run purges expired records.
const DefaultSweepInterval = time.Minute

type record struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is an in-process Store guarded by a single mutex. Construct one
// per process and share it by pointer.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]record

	ttl   time.Duration
	clock clock.Clocker
	swept metric.Int64Counter
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithSweptCounter records the number of purged records on each sweep.
func WithSweptCounter(c metric.Int64Counter) MemoryOption {
	return func(s *MemoryStore) { s.swept = c }
}

// NewMemoryStore creates a store whose records live for ttl.
func NewMemoryStore(ttl time.Duration, clk clock.Clocker, opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		records: make(map[string]record),
		ttl:     ttl,
		clock:   clk,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores code for identity with expiry now+ttl.
func (s *MemoryStore) Put(_ context.Context, identity, code string) error {
	key := NormalizeIdentity(identity)
	expiresAt := s.clock.Now().Add(s.ttl)

	s.mu.Lock()
	s.records[key] = record{code: code, expiresAt: expiresAt}
	s.mu.Unlock()

	return nil
}

// PutIfNotLive stores code unless identity holds an unexpired record.
func (s *MemoryStore) PutIfNotLive(_ context.Context, identity, code string) (bool, error) {
	key := NormalizeIdentity(identity)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if rec, ok := s.records[key]; ok && rec.expiresAt.After(now) {
		return false, nil
	}

	s.records[key] = record{code: code, expiresAt: now.Add(s.ttl)}
	return true, nil
}

// HasLive reports whether identity has an unexpired record.
func (s *MemoryStore) HasLive(_ context.Context, identity string) (bool, error) {
	key := NormalizeIdentity(identity)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	return ok && rec.expiresAt.After(s.clock.Now()), nil
}

// Consume redeems candidate for identity.
func (s *MemoryStore) Consume(_ context.Context, identity, candidate string) (bool, error) {
	key := NormalizeIdentity(identity)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return false, nil
	}

	if !rec.expiresAt.After(s.clock.Now()) {
		delete(s.records, key)
		return false, nil
	}

	if subtle.ConstantTimeCompare([]byte(rec.code), []byte(candidate)) != 1 {
		return false, nil
	}

	delete(s.records, key)
	return true, nil
}

// Len returns the number of records held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Sweep deletes every expired record and returns how many were removed.
func (s *MemoryStore) Sweep(ctx context.Context) int {
	now := s.clock.Now()

	s.mu.Lock()
	removed := 0
	for key, rec := range s.records {
		if !rec.expiresAt.After(now) {
			delete(s.records, key)
			removed++
		}
	}
	s.mu.Unlock()

	if s.swept != nil && removed > 0 {
		s.swept.Add(ctx, int64(removed))
	}

	return removed
}

// Run sweeps every interval until ctx is cancelled. It always returns nil so
// it can be scheduled on a goroutine.Manager.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "otp sweeper started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "otp sweeper stopped")
			return nil
		case <-ticker.C:
			if n := s.Sweep(ctx); n > 0 {
				slog.DebugContext(ctx, "otp sweeper purged expired records", "count", n)
			}
		}
	}
}
