package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jzmart/account/internal/account/entity"
	"github.com/jzmart/account/internal/pkg/goerror"
)

const userColumns = `id, name, email, role, phone, city, address, interest, avatar, avatar_key, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.City, &u.Address,
		&u.Interest, &u.Avatar, &u.AvatarKey, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DB) ExistsUserByEmail(ctx context.Context, email string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ExistsUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	err = s.conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	u, err := scanUser(s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, s.mapError(err)
	}

	return u, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	u, err := scanUser(s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return u, nil
}

func (s *DB) GetUserCredentialByEmail(ctx context.Context, email string) (_ *entity.UserCredential, err error) {
	ctx, span := s.startSpan(ctx, "GetUserCredentialByEmail")
	defer func() { s.endSpan(span, err) }()

	var c entity.UserCredential
	err = s.conn.QueryRow(ctx, `SELECT id, email, password FROM users WHERE email = $1`, email).
		Scan(&c.ID, &c.Email, &c.Password)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &c, nil
}

func (s *DB) GetUserCredentialByID(ctx context.Context, id int64) (_ *entity.UserCredential, err error) {
	ctx, span := s.startSpan(ctx, "GetUserCredentialByID")
	defer func() { s.endSpan(span, err) }()

	var c entity.UserCredential
	err = s.conn.QueryRow(ctx, `SELECT id, email, password FROM users WHERE id = $1`, id).
		Scan(&c.ID, &c.Email, &c.Password)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &c, nil
}

func (s *DB) CreateUser(ctx context.Context, nu entity.NewUser) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	u, err := scanUser(s.conn.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		nu.ID, nu.Name, nu.Email, nu.Password, string(nu.Role.Ensure()),
	))
	if err != nil {
		return nil, s.mapError(err)
	}

	return u, nil
}

func (s *DB) UpdateUserPassword(ctx context.Context, email, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserPassword")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `UPDATE users SET password = $2, updated_at = NOW() WHERE email = $1`, email, hash)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) UpdateUserPasswordByID(ctx context.Context, id int64, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserPasswordByID")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`, id, hash)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// UpdateUserProfile writes the non-nil fields of p and returns the updated row.
func (s *DB) UpdateUserProfile(ctx context.Context, id int64, p entity.UserProfile) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserProfile")
	defer func() { s.endSpan(span, err) }()

	u, err := scanUser(s.conn.QueryRow(ctx, `
		UPDATE users SET
			name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			city = COALESCE($4, city),
			address = COALESCE($5, address),
			interest = COALESCE($6, interest),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, p.Name, p.Phone, p.City, p.Address, p.Interest,
	))
	if err != nil {
		return nil, s.mapError(err)
	}

	return u, nil
}

// UpdateUserAvatar stores the new avatar and returns the object key it replaced.
func (s *DB) UpdateUserAvatar(ctx context.Context, id int64, url, key string) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserAvatar")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	var oldKey string
	if err = tx.QueryRow(ctx, `SELECT avatar_key FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&oldKey); err != nil {
		return "", s.mapError(err)
	}

	if _, err = tx.Exec(ctx, `
		UPDATE users SET avatar = $2, avatar_key = $3, updated_at = NOW()
		WHERE id = $1`,
		id, url, key,
	); err != nil {
		return "", s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return "", s.mapError(err)
	}

	return oldKey, nil
}

// DeleteUser removes the account and returns its avatar object key.
func (s *DB) DeleteUser(ctx context.Context, id int64) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "DeleteUser")
	defer func() { s.endSpan(span, err) }()

	var avatarKey string
	err = s.conn.QueryRow(ctx, `DELETE FROM users WHERE id = $1 RETURNING avatar_key`, id).Scan(&avatarKey)
	if err != nil {
		return "", s.mapError(err)
	}

	return avatarKey, nil
}
