package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/passcode/internal/auth/entity"
	"github.com/shandysiswandi/passcode/internal/pkg/config"
	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
	"github.com/shandysiswandi/passcode/internal/pkg/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type mockRepoDB struct{ mock.Mock }

func (m *mockRepoDB) GetSessionUserByToken(ctx context.Context, tokenHash string, now time.Time) (*entity.SessionUser, error) {
	args := m.Called(ctx, tokenHash, now)
	su, _ := args.Get(0).(*entity.SessionUser)
	return su, args.Error(1)
}

func (m *mockRepoDB) DeleteSessionByToken(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockRepoDB) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepoDB) ListUsers(ctx context.Context, limit, offset int32) ([]entity.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Get(1).(int64), args.Error(2)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyPasscode(ctx context.Context, msg PasscodeNotification) error {
	return m.Called(ctx, msg).Error(0)
}

// captureNotifier remembers every passcode it was asked to deliver.
type captureNotifier struct {
	mu   sync.Mutex
	sent []PasscodeNotification
}

func (c *captureNotifier) NotifyPasscode(_ context.Context, msg PasscodeNotification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return nil
}

func (c *captureNotifier) last() PasscodeNotification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent[len(c.sent)-1]
}

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type mockIssuer struct{ mock.Mock }

func (m *mockIssuer) Issue(ctx context.Context, in IssueInput) (*IssueOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*IssueOutput)
	return out, args.Error(1)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, identity, code string) error {
	return m.Called(ctx, identity, code).Error(0)
}

func (m *mockStore) PutIfNotLive(ctx context.Context, identity, code string) (bool, error) {
	args := m.Called(ctx, identity, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) HasLive(ctx context.Context, identity string) (bool, error) {
	args := m.Called(ctx, identity)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Consume(ctx context.Context, identity, candidate string) (bool, error) {
	args := m.Called(ctx, identity, candidate)
	return args.Bool(0), args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUsers) CreateUser(ctx context.Context, user entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUsers) MarkUserVerified(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) CreateSession(ctx context.Context, sess entity.Session) error {
	return m.Called(ctx, sess).Error(0)
}

// memoryDirectory is an in-memory user directory and session store.
type memoryDirectory struct {
	mu       sync.Mutex
	users    map[string]entity.User
	sessions []entity.Session
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{users: map[string]entity.User{}}
}

func (d *memoryDirectory) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u, nil
}

func (d *memoryDirectory) CreateUser(_ context.Context, user entity.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[user.Email]; ok {
		return goerror.ErrConflict
	}
	d.users[user.Email] = user
	return nil
}

func (d *memoryDirectory) MarkUserVerified(_ context.Context, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, u := range d.users {
		if u.ID == id {
			u.EmailVerified = true
			d.users[k] = u
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (d *memoryDirectory) CreateSession(_ context.Context, sess entity.Session) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions = append(d.sessions, sess)
	return nil
}

type seqID struct {
	mu   sync.Mutex
	next int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

type staticOID string

func (s staticOID) Generate() string { return string(s) }

func newTestConfig(t *testing.T, yaml string) config.Config {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)
	return cfg
}

func newTestValidator(t *testing.T) validator.Validator {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)
	return v
}
