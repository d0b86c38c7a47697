package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/passcode/internal/auth/entity"
	"github.com/shandysiswandi/passcode/internal/pkg/goerror"
)

const userColumns = `id, email, name, email_verified, role, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.EmailVerified, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.ParseRole(role)
	return &u, nil
}

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	const q = `SELECT ` + userColumns + ` FROM auth_users WHERE email = $1`

	user, err := scanUser(s.conn.QueryRow(ctx, q, email))
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return user, nil
}

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	const q = `INSERT INTO auth_users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, q,
		user.ID, user.Email, user.Name, user.EmailVerified, user.Role.String(), user.CreatedAt, user.UpdatedAt)
	err = s.mapError(err)
	return err
}

func (s *DB) MarkUserVerified(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkUserVerified")
	defer func() { s.endSpan(span, err) }()

	const q = `UPDATE auth_users SET email_verified = TRUE, updated_at = NOW() WHERE id = $1`

	tag, err := s.conn.Exec(ctx, q, id)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
	}
	return err
}

func (s *DB) ListUsers(ctx context.Context, limit, offset int32) (_ []entity.User, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListUsers")
	defer func() { s.endSpan(span, err) }()

	var total int64
	if err = s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM auth_users`).Scan(&total); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	const q = `SELECT ` + userColumns + ` FROM auth_users ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := s.conn.Query(ctx, q, limit, offset)
	if err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entity.User, 0, limit)
	for rows.Next() {
		u, scanErr := scanUser(rows)
		if scanErr != nil {
			err = scanErr
			return nil, 0, err
		}
		users = append(users, *u)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
