package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/shandysiswandi/passcode/internal/pkg/authn"
	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
)

// SessionVerifier resolves a raw session token to its principal.
type SessionVerifier interface {
	AuthenticateSession(ctx context.Context, token string) (*authn.Principal, error)
}

func middlewareAuthentication(slot *sessionSlot, cookieName string, publicEndpoints map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := publicEndpoints[r.Method][matchedRoutePath(r)]; skip {
				next.ServeHTTP(w, r)
				return
			}

			verifier := slot.verifier
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" || verifier == nil {
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			principal, err := verifier.AuthenticateSession(r.Context(), cookie.Value)
			var gerr *goerror.Error
			if errors.As(err, &gerr) && gerr.StatusCode() >= http.StatusInternalServerError {
				encodeError(r.Context(), w, err)
				return
			}
			if err != nil || principal == nil {
				writeJSON(w, errorResponse{Message: "Invalid or expired session"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(authn.SetPrincipal(r.Context(), principal)))
		})
	}
}
