package inbound

import (
	"context"

	"github.com/shandysiswandi/passcode/internal/notification/usecase"
)

type uc interface {
	ConsumePasscodeRequested(ctx context.Context, in usecase.ConsumePasscodeRequestedInput) error
}
