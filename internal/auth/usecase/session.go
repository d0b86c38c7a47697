package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/passcode/internal/pkg/authn"
	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
	"github.com/shandysiswandi/passcode/internal/pkg/uid"
)

var errInvalidSession = goerror.NewBusiness("Invalid or expired session", goerror.CodeUnauthorized)

// AuthenticateSession resolves a session cookie token into a principal.
func (s *Usecase) AuthenticateSession(ctx context.Context, token string) (*authn.Principal, error) {
	ctx, span := s.startSpan(ctx, "AuthenticateSession")
	defer span.End()

	if len(token) != uid.ObjectIDSize*2 {
		return nil, errInvalidSession
	}

	tokenHash, err := s.hmac.Hash(token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash session token", "error", err)
		return nil, goerror.NewServer(err)
	}

	su, err := s.repoDB.GetSessionUserByToken(ctx, string(tokenHash), s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errInvalidSession
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get session by token", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &authn.Principal{
		SessionID: su.SessionID,
		UserID:    su.User.ID,
		Email:     su.User.Email,
		Name:      su.User.Name,
		Role:      su.User.Role.String(),
		ExpiresAt: su.ExpiresAt,
	}, nil
}

type CurrentSessionOutput struct {
	UserID    int64
	Email     string
	Name      string
	Role      string
	ExpiresAt time.Time
}

func (s *Usecase) CurrentSession(ctx context.Context) (*CurrentSessionOutput, error) {
	_, span := s.startSpan(ctx, "CurrentSession")
	defer span.End()

	p := authn.GetPrincipal(ctx)
	if p == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return &CurrentSessionOutput{
		UserID:    p.UserID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      p.Role,
		ExpiresAt: p.ExpiresAt,
	}, nil
}
