package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/shandysiswandi/passcode/internal/pkg/stacktrace"
)

func callHandlerWithRecover(ctx context.Context, fn func() error) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic in messaging handler", "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic in messaging handler", "panic", rvr, "stack", string(stack))
		}
		err = fmt.Errorf("messaging: panic in handler: %v", rvr)
	}()

	return fn()
}
