package db

import (
	"context"
	"time"

	"github.com/shandysiswandi/passcode/internal/auth/entity"
)

func (s *DB) CreateSession(ctx context.Context, sess entity.Session) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSession")
	defer func() { s.endSpan(span, err) }()

	const q = `
		INSERT INTO auth_sessions (id, user_id, token_hash, expires_at, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, q,
		sess.ID, sess.UserID, sess.TokenHash, sess.ExpiresAt, sess.IPAddress, sess.UserAgent, sess.CreatedAt)
	err = s.mapError(err)
	return err
}

// GetSessionUserByToken returns the session with tokenHash and its user when
// the session expires after now.
func (s *DB) GetSessionUserByToken(ctx context.Context, tokenHash string, now time.Time) (_ *entity.SessionUser, err error) {
	ctx, span := s.startSpan(ctx, "GetSessionUserByToken")
	defer func() { s.endSpan(span, err) }()

	const q = `
		SELECT s.id, s.expires_at, u.id, u.email, u.name, u.email_verified, u.role, u.created_at, u.updated_at
		FROM auth_sessions s
		JOIN auth_users u ON u.id = s.user_id
		WHERE s.token_hash = $1 AND s.expires_at > $2`

	var su entity.SessionUser
	var role string
	err = s.conn.QueryRow(ctx, q, tokenHash, now).Scan(
		&su.SessionID, &su.ExpiresAt,
		&su.User.ID, &su.User.Email, &su.User.Name, &su.User.EmailVerified, &role, &su.User.CreatedAt, &su.User.UpdatedAt,
	)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	su.User.Role = entity.ParseRole(role)

	return &su, nil
}

func (s *DB) DeleteSessionByToken(ctx context.Context, tokenHash string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteSessionByToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM auth_sessions WHERE token_hash = $1`, tokenHash)
	err = s.mapError(err)
	return err
}

func (s *DB) DeleteExpiredSessions(ctx context.Context, now time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteExpiredSessions")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM auth_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		err = s.mapError(err)
		return 0, err
	}

	return tag.RowsAffected(), nil
}
