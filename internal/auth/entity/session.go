package entity

import "time"

// Session is a persisted login. TokenHash is the HMAC of the cookie token;
// the raw token is never stored.
type Session struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// SessionUser is a live session joined with its owner.
type SessionUser struct {
	SessionID int64
	ExpiresAt time.Time
	User      User
}
