package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/passcode/internal/auth/usecase"
	"github.com/shandysiswandi/passcode/internal/pkg/config"
	"github.com/shandysiswandi/passcode/internal/pkg/router"
)

type uc interface {
	SendPasscode(ctx context.Context, in usecase.SendPasscodeInput) error
	VerifyPasscode(ctx context.Context, in usecase.VerifyPasscodeInput) (*usecase.VerifyPasscodeOutput, error)

	CurrentSession(ctx context.Context) (*usecase.CurrentSessionOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error

	UserList(ctx context.Context, in usecase.UserListInput) (*usecase.UserListOutput, error)
}

// cookieConfig shapes the session cookie.
type cookieConfig struct {
	name   string
	domain string
	secure bool
	// maxAge of a new session cookie, in seconds
	maxAge int
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, cfg config.Config) {
	end := &HTTPEndpoint{uc: uc, cookie: newCookieConfig(cfg)}

	// Passcode login
	r.POST("/api/v1/auth/passcode/send", end.SendPasscode)
	r.POST("/api/v1/auth/passcode/verify", end.VerifyPasscode)

	// Session (need authenticated)
	r.GET("/api/v1/auth/session", end.CurrentSession)
	r.POST("/api/v1/auth/logout", end.Logout)

	// User Directory (need authenticated & authorization)
	r.GET("/api/v1/auth/users", end.UserList)
}

func newCookieConfig(cfg config.Config) cookieConfig {
	c := cookieConfig{
		name:   cfg.GetString("modules.auth.cookie.name"),
		domain: cfg.GetString("modules.auth.cookie.domain"),
		secure: cfg.GetBool("modules.auth.cookie.secure"),
		maxAge: int(usecase.SessionTTL(cfg).Seconds()),
	}
	if c.name == "" {
		c.name = router.DefaultSessionCookie
	}
	return c
}

func (c cookieConfig) session(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		Domain:   c.domain,
		MaxAge:   maxAge,
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
