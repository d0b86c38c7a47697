// Package authn carries the authenticated session principal through a
// request context.
package authn

import (
	"context"
	"time"
)

// Principal is the user behind a valid session cookie.
type Principal struct {
	SessionID int64
	UserID    int64
	Email     string
	Name      string
	Role      string
	ExpiresAt time.Time
}

type principalKey struct{}

// SetPrincipal returns a child context carrying p.
func SetPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal returns the principal stored in ctx, or nil.
func GetPrincipal(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
