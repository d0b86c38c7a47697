package inbound

import (
	"net/http"
	"time"
)

type SendPasscodeRequest struct {
	Email string `json:"email"`
}

type SendPasscodeResponse struct{}

func (SendPasscodeResponse) Message() string {
	return "Passcode sent successfully"
}

type VerifyPasscodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type SessionUserResponse struct {
	ID    int64  `json:"id,string"`
	Email string `json:"email"`
}

type VerifyPasscodeResponse struct {
	User      SessionUserResponse `json:"user"`
	ExpiresAt time.Time           `json:"expires_at"`
	// cookie
	cookie *http.Cookie
}

func (VerifyPasscodeResponse) Message() string {
	return "Passcode verified successfully"
}

func (r VerifyPasscodeResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{r.cookie}
}

type CurrentSessionResponse struct {
	User      CurrentUserResponse `json:"user"`
	ExpiresAt time.Time           `json:"expires_at"`
}

type CurrentUserResponse struct {
	ID    int64  `json:"id,string"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type LogoutResponse struct {
	// cookie
	cookie *http.Cookie
}

func (LogoutResponse) StatusCode() int {
	return http.StatusNoContent
}

func (r LogoutResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{r.cookie}
}

type UserResponse struct {
	ID            int64     `json:"id,string"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	EmailVerified bool      `json:"email_verified"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
	// meta
	total int64
	size  int32
	page  int32
}

func (r UsersResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"size":  r.size,
		"page":  r.page,
	}
}
