package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jzmart/account/internal/account/entity"
	"github.com/jzmart/account/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	User    *entity.User
	Session *Session
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	cred, err := s.repoDB.GetUserCredentialByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", in.Email)
		return nil, goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user credential by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.verifyPassword(cred.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", cred.ID)
		return nil, goerror.NewBusiness("Invalid credentials.", goerror.CodeUnauthorized)
	}

	if isBcrypt(cred.Password) {
		s.upgradePasswordHash(ctx, cred.ID, in.Password)
	}

	user, err := s.repoDB.GetUserByID(ctx, cred.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", cred.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	session, err := s.newSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{User: user, Session: session}, nil
}

// upgradePasswordHash rewrites a legacy bcrypt hash as argon2id. Failures only
// leave the old hash in place.
func (s *Usecase) upgradePasswordHash(ctx context.Context, userID int64, password string) {
	hashed, err := s.argon2id.Hash(password)
	if err != nil {
		slog.WarnContext(ctx, "failed to rehash legacy password", "user_id", userID, "error", err)
		return
	}

	if err := s.repoDB.UpdateUserPasswordByID(ctx, userID, string(hashed)); err != nil {
		slog.WarnContext(ctx, "failed to repo store rehashed password", "user_id", userID, "error", err)
	}
}
