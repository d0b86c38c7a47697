package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {

	t.Run("KeepsOnlyInternalFrames", func(t *testing.T) {

		// Arrange
		stack := []byte("goroutine 1 [running]:\n" +
			"runtime/debug.Stack()\n" +
			"\t/usr/local/go/src/runtime/debug/stack.go:26 +0x5e\n" +
			"github.com/shandysiswandi/passcode/internal/pkg/router.middlewareRecoverer.func1.1()\n" +
			"\t/app/internal/pkg/router/middleware_recover.go:31 +0x7a\n" +
			"net/http.HandlerFunc.ServeHTTP(0x0?, {0x0?, 0x0?}, 0x0?)\n" +
			"\t/usr/local/go/src/net/http/server.go:2294 +0x29\n")

		// Act
		paths := InternalPaths(stack)

		// Assert
		assert.Equal(t, []string{"internal/pkg/router/middleware_recover.go:31"}, paths)
	})

	t.Run("Empty", func(t *testing.T) {

		// Act
		paths := InternalPaths(nil)

		// Assert
		assert.Empty(t, paths)
	})
}
