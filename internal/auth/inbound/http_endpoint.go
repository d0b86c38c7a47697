package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/passcode/internal/auth/entity"
	"github.com/shandysiswandi/passcode/internal/auth/usecase"
	"github.com/shandysiswandi/passcode/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for passcode login and sessions.
type HTTPEndpoint struct {
	uc     uc
	cookie cookieConfig
}

// SendPasscode emails a one-time passcode to the given address.
// @Summary Send login passcode
// @Description Generates a 6 digit passcode valid for a few minutes and emails it. A second request while a passcode is pending is rejected.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SendPasscodeRequest true "Send passcode payload"
// @Success 200 {object} router.successResponse{data=SendPasscodeResponse} "Passcode sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Passcode already pending"
// @Failure 503 {object} router.errorResponse "Failed to send passcode email"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/passcode/send [post]
func (h *HTTPEndpoint) SendPasscode(r *router.Request) (any, error) {
	var req SendPasscodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.SendPasscode(r.Context(), usecase.SendPasscodeInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return SendPasscodeResponse{}, nil
}

// VerifyPasscode redeems a passcode and starts a session.
// @Summary Verify login passcode
// @Description Redeems the pending passcode and sets the session cookie. Wrong and expired passcodes are reported the same way.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body VerifyPasscodeRequest true "Verify passcode payload"
// @Success 200 {object} router.successResponse{data=VerifyPasscodeResponse} "Session started"
// @Header 200 {string} Set-Cookie "Session cookie"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired passcode"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/passcode/verify [post]
func (h *HTTPEndpoint) VerifyPasscode(r *router.Request) (any, error) {
	var req VerifyPasscodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyPasscode(r.Context(), usecase.VerifyPasscodeInput{
		Email:     req.Email,
		Code:      req.Code,
		IPAddress: r.ClientIP(),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		return nil, err
	}

	return VerifyPasscodeResponse{
		User:      SessionUserResponse{ID: resp.UserID, Email: resp.Email},
		ExpiresAt: resp.ExpiresAt,
		cookie:    h.cookie.session(resp.SessionToken, h.cookie.maxAge),
	}, nil
}

// CurrentSession returns the signed in user.
// @Summary Current session
// @Description Returns the user behind the session cookie and when the session expires.
// @Tags Auth
// @Security SessionCookie
// @Produce json
// @Success 200 {object} router.successResponse{data=CurrentSessionResponse} "Current session"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/auth/session [get]
func (h *HTTPEndpoint) CurrentSession(r *router.Request) (any, error) {
	resp, err := h.uc.CurrentSession(r.Context())
	if err != nil {
		return nil, err
	}

	return CurrentSessionResponse{
		User: CurrentUserResponse{
			ID:    resp.UserID,
			Email: resp.Email,
			Name:  resp.Name,
			Role:  resp.Role,
		},
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// Logout ends the current session and clears the cookie.
// @Summary Logout
// @Description Deletes the session of the presented cookie and expires the cookie.
// @Tags Auth
// @Security SessionCookie
// @Success 204 "Logged out"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{
		SessionToken: r.GetCookie(h.cookie.name),
	}); err != nil {
		return nil, err
	}

	return LogoutResponse{cookie: h.cookie.session("", -1)}, nil
}

// UserList returns a page of users.
// @Summary List users
// @Description Returns a paginated list of users. Requires the admin role.
// @Tags Auth, Management Users
// @Security SessionCookie
// @Produce json
// @Param size query int false "Pagination size"
// @Param page query int false "Pagination page"
// @Success 200 {object} router.successResponse{data=UsersResponse} "User list"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/users [get]
func (h *HTTPEndpoint) UserList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserList(r.Context(), usecase.UserListInput{Size: size, Page: page})
	if err != nil {
		return nil, err
	}

	return UsersResponse{
		Users: lo.Map(resp.Users, func(u entity.User, _ int) UserResponse {
			return UserResponse{
				ID:            u.ID,
				Email:         u.Email,
				Name:          u.Name,
				EmailVerified: u.EmailVerified,
				Role:          u.Role.String(),
				CreatedAt:     u.CreatedAt,
			}
		}),
		total: resp.Total,
		size:  resp.Size,
		page:  resp.Page,
	}, nil
}
