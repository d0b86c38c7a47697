package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/passcode/internal/auth/entity"
	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
	"github.com/shandysiswandi/passcode/internal/shared/authz"
)

type UserListInput struct {
	Size int32
	Page int32
}

type UserListOutput struct {
	Page  int32
	Size  int32
	Total int64
	Users []entity.User
}

func (s *Usecase) UserList(ctx context.Context, in UserListInput) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, authz.ObjUsers, authz.ActRead); err != nil {
		return nil, err
	}

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}
	in.Page = max(in.Page, 1)

	users, total, err := s.repoDB.ListUsers(ctx, in.Size, (in.Page-1)*in.Size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list users", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserListOutput{
		Page:  in.Page,
		Size:  in.Size,
		Total: total,
		Users: users,
	}, nil
}
