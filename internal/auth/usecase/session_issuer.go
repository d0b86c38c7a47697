package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/passcode/internal/auth/entity"
	"github.com/shandysiswandi/passcode/internal/pkg/clock"
	"github.com/shandysiswandi/passcode/internal/pkg/config"
	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
	"github.com/shandysiswandi/passcode/internal/pkg/hash"
	"github.com/shandysiswandi/passcode/internal/pkg/instrument"
	"github.com/shandysiswandi/passcode/internal/pkg/otp"
	"github.com/shandysiswandi/passcode/internal/pkg/uid"
	"go.opentelemetry.io/otel/trace"
)

const defaultSessionTTL = 7 * 24 * time.Hour

type userDirectory interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	CreateUser(ctx context.Context, user entity.User) error
	MarkUserVerified(ctx context.Context, id int64) error
}

type sessionStore interface {
	CreateSession(ctx context.Context, sess entity.Session) error
}

type IssueInput struct {
	Email     string
	IPAddress string
	UserAgent string
}

type IssueOutput struct {
	Token     string
	ExpiresAt time.Time
	UserID    int64
	Email     string
}

// SessionIssuer turns a verified email into a persisted session. It creates
// the user on first login and marks an existing user verified.
type SessionIssuer struct {
	users    userDirectory
	sessions sessionStore
	uid      uid.NumberID
	oid      uid.StringID
	hmac     hash.Hash
	clock    clock.Clocker
	cfg      config.Config
	ins      instrument.Instrumentation
}

type SessionIssuerDependency struct {
	Users      userDirectory
	Sessions   sessionStore
	UID        uid.NumberID
	OID        uid.StringID
	HMAC       hash.Hash
	Clock      clock.Clocker
	Config     config.Config
	Instrument instrument.Instrumentation
}

func NewSessionIssuer(dep SessionIssuerDependency) *SessionIssuer {
	return &SessionIssuer{
		users:    dep.Users,
		sessions: dep.Sessions,
		uid:      dep.UID,
		oid:      dep.OID,
		hmac:     dep.HMAC,
		clock:    dep.Clock,
		cfg:      dep.Config,
		ins:      dep.Instrument,
	}
}

// Issue never retries. When the session insert fails after the user was
// created, the user is kept and no session is returned.
func (s *SessionIssuer) Issue(ctx context.Context, in IssueInput) (*IssueOutput, error) {
	ctx, span := s.ins.Tracer("auth.usecase").Start(ctx, "IssueSession")
	defer span.End()

	email := otp.NormalizeIdentity(in.Email)

	user, err := s.ensureUser(ctx, email, span)
	if err != nil {
		return nil, err
	}

	token := s.oid.Generate()
	tokenHash, err := s.hmac.Hash(token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash session token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	sess := entity.Session{
		ID:        s.uid.Generate(),
		UserID:    user.ID,
		TokenHash: string(tokenHash),
		ExpiresAt: now.Add(s.sessionTTL()),
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		CreatedAt: now,
	}
	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		slog.ErrorContext(ctx, "failed to repo create session", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &IssueOutput{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		UserID:    user.ID,
		Email:     user.Email,
	}, nil
}

func (s *SessionIssuer) ensureUser(ctx context.Context, email string, span trace.Span) (*entity.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		if !user.EmailVerified {
			if err := s.users.MarkUserVerified(ctx, user.ID); err != nil {
				slog.ErrorContext(ctx, "failed to repo mark user verified", "user_id", user.ID, "error", err)
				return nil, goerror.NewServer(err)
			}
			user.EmailVerified = true
		}
		return user, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	newUser := entity.User{
		ID:            s.uid.Generate(),
		Email:         email,
		Name:          entity.NameFromEmail(email),
		EmailVerified: true,
		Role:          s.roleFor(email),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.users.CreateUser(ctx, newUser)
	if errors.Is(err, goerror.ErrConflict) {
		// a concurrent verify for the same email created the row first
		span.AddEvent("user created concurrently")
		existing, err := s.users.GetUserByEmail(ctx, email)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get user after conflict", "email", email, "error", err)
			return nil, goerror.NewServer(err)
		}
		return existing, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "user created on first login", "user_id", newUser.ID)

	return &newUser, nil
}

func (s *SessionIssuer) roleFor(email string) entity.Role {
	admins := lo.Map(s.cfg.GetArray("modules.auth.admin_emails"), func(e string, _ int) string {
		return otp.NormalizeIdentity(e)
	})
	if lo.Contains(admins, email) {
		return entity.RoleAdmin
	}
	return entity.RoleUser
}

func (s *SessionIssuer) sessionTTL() time.Duration {
	return SessionTTL(s.cfg)
}

// SessionTTL is the configured session lifetime, seven days when unset.
func SessionTTL(cfg config.Config) time.Duration {
	if ttl := cfg.GetDay("modules.auth.session_ttl_days"); ttl > 0 {
		return ttl
	}
	return defaultSessionTTL
}
