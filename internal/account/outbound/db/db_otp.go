package db

import (
	"context"
	"time"

	"github.com/jzmart/account/internal/account/entity"
	"github.com/jzmart/account/internal/pkg/goerror"
)

func (s *DB) PurgeExpiredOTP(ctx context.Context, now time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "PurgeExpiredOTP")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM otps WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

func (s *DB) FindLiveOTP(ctx context.Context, email string, purpose entity.Purpose, now time.Time) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "FindLiveOTP")
	defer func() { s.endSpan(span, err) }()

	var o entity.OTP
	err = s.conn.QueryRow(ctx, `
		SELECT id, email, purpose, envelope, expires_at, created_at, updated_at
		FROM otps
		WHERE email = $1 AND purpose = $2 AND expires_at > $3`,
		email, purpose.String(), now,
	).Scan(&o.ID, &o.Email, &o.Purpose, &o.Envelope, &o.ExpiresAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &o, nil
}

func (s *DB) CreateOTP(ctx context.Context, o entity.OTP) (err error) {
	ctx, span := s.startSpan(ctx, "CreateOTP")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO otps (id, email, purpose, envelope, expires_at)
		VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Email, o.Purpose.String(), o.Envelope, o.ExpiresAt,
	)
	return s.mapError(err)
}

func (s *DB) ExtendOTP(ctx context.Context, id int64, envelope string, expiresAt time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "ExtendOTP")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE otps SET envelope = $2, expires_at = $3, updated_at = NOW()
		WHERE id = $1`,
		id, envelope, expiresAt,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) DeleteOTP(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteOTP")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM otps WHERE id = $1`, id)
	return s.mapError(err)
}
