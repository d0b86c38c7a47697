package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/passcode/internal/pkg/authn"
	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
	"github.com/shandysiswandi/passcode/internal/pkg/uid"
)

type LogoutInput struct {
	SessionToken string
}

func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	p := authn.GetPrincipal(ctx)
	if p == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if len(in.SessionToken) != uid.ObjectIDSize*2 {
		return nil
	}

	tokenHash, err := s.hmac.Hash(in.SessionToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash session token", "user_id", p.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.DeleteSessionByToken(ctx, string(tokenHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete session", "user_id", p.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
