package entity

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

// ParseRole returns RoleUser for anything it does not recognize.
func ParseRole(s string) Role {
	if Role(strings.ToLower(strings.TrimSpace(s))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

type User struct {
	ID            int64
	Email         string
	Name          string
	EmailVerified bool
	Role          Role
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NameFromEmail returns the local part of email, used as the display name of
// a user created at first login.
func NameFromEmail(email string) string {
	local, _, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return email
	}
	return local
}
