package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shandysiswandi/passcode/internal/auth/entity"
	"github.com/shandysiswandi/passcode/internal/pkg/authn"
	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
	"github.com/shandysiswandi/passcode/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUsecase_AuthenticateSession(t *testing.T) {
	tokenHash, _ := hash.NewHMACSHA256("test-secret").Hash(testToken)

	t.Run("MalformedTokenSkipsLookup", func(t *testing.T) {

		// Arrange
		repo := new(mockRepoDB)
		uc := newTestUsecase(t, Dependency{RepoDB: repo})

		// Act
		p, err := uc.AuthenticateSession(context.Background(), "short")

		// Assert
		assert.Nil(t, p)
		requireStatus(t, err, http.StatusUnauthorized, "Invalid or expired session")
		repo.AssertNotCalled(t, "GetSessionUserByToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownOrExpired", func(t *testing.T) {

		// Arrange
		repo := new(mockRepoDB)
		repo.On("GetSessionUserByToken", mock.Anything, string(tokenHash), t0).Return(nil, goerror.ErrNotFound)
		uc := newTestUsecase(t, Dependency{RepoDB: repo})

		// Act
		_, err := uc.AuthenticateSession(context.Background(), testToken)

		// Assert
		requireStatus(t, err, http.StatusUnauthorized, "Invalid or expired session")
	})

	t.Run("RepoFailure", func(t *testing.T) {

		// Arrange
		repo := new(mockRepoDB)
		repo.On("GetSessionUserByToken", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("pg down"))
		uc := newTestUsecase(t, Dependency{RepoDB: repo})

		// Act
		_, err := uc.AuthenticateSession(context.Background(), testToken)

		// Assert
		requireStatus(t, err, http.StatusInternalServerError, "Internal server error")
	})

	t.Run("Valid", func(t *testing.T) {

		// Arrange
		exp := t0.Add(48 * time.Hour)
		repo := new(mockRepoDB)
		repo.On("GetSessionUserByToken", mock.Anything, string(tokenHash), t0).Return(&entity.SessionUser{
			SessionID: 55,
			ExpiresAt: exp,
			User:      entity.User{ID: 7, Email: "a@x.io", Name: "a", Role: entity.RoleAdmin},
		}, nil)
		uc := newTestUsecase(t, Dependency{RepoDB: repo})

		// Act
		p, err := uc.AuthenticateSession(context.Background(), testToken)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, &authn.Principal{
			SessionID: 55, UserID: 7, Email: "a@x.io", Name: "a", Role: "admin", ExpiresAt: exp,
		}, p)
	})
}

func TestUsecase_CurrentSession(t *testing.T) {

	t.Run("NoPrincipal", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, Dependency{})

		// Act
		_, err := uc.CurrentSession(context.Background())

		// Assert
		requireStatus(t, err, http.StatusUnauthorized, "Authentication required")
	})

	t.Run("FromPrincipal", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, Dependency{})
		ctx := authn.SetPrincipal(context.Background(), &authn.Principal{
			UserID: 7, Email: "a@x.io", Name: "a", Role: "user", ExpiresAt: t0,
		})

		// Act
		out, err := uc.CurrentSession(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, &CurrentSessionOutput{UserID: 7, Email: "a@x.io", Name: "a", Role: "user", ExpiresAt: t0}, out)
	})
}

func TestUsecase_Logout(t *testing.T) {
	tokenHash, _ := hash.NewHMACSHA256("test-secret").Hash(testToken)
	authed := authn.SetPrincipal(context.Background(), &authn.Principal{UserID: 7})

	t.Run("Unauthenticated", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, Dependency{RepoDB: new(mockRepoDB)})

		// Act
		err := uc.Logout(context.Background(), LogoutInput{SessionToken: testToken})

		// Assert
		requireStatus(t, err, http.StatusUnauthorized, "Authentication required")
	})

	t.Run("DeletesSession", func(t *testing.T) {

		// Arrange
		repo := new(mockRepoDB)
		repo.On("DeleteSessionByToken", mock.Anything, string(tokenHash)).Return(nil)
		uc := newTestUsecase(t, Dependency{RepoDB: repo})

		// Act
		err := uc.Logout(authed, LogoutInput{SessionToken: testToken})

		// Assert
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("MalformedTokenIsNoop", func(t *testing.T) {

		// Arrange
		repo := new(mockRepoDB)
		uc := newTestUsecase(t, Dependency{RepoDB: repo})

		// Act
		err := uc.Logout(authed, LogoutInput{SessionToken: "x"})

		// Assert
		require.NoError(t, err)
		repo.AssertNotCalled(t, "DeleteSessionByToken", mock.Anything, mock.Anything)
	})

	t.Run("RepoFailure", func(t *testing.T) {

		// Arrange
		repo := new(mockRepoDB)
		repo.On("DeleteSessionByToken", mock.Anything, mock.Anything).Return(errors.New("pg down"))
		uc := newTestUsecase(t, Dependency{RepoDB: repo})

		// Act
		err := uc.Logout(authed, LogoutInput{SessionToken: testToken})

		// Assert
		requireStatus(t, err, http.StatusInternalServerError, "")
	})
}
