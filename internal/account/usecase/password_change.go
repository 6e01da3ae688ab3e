package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jzmart/account/internal/pkg/goerror"
	"github.com/jzmart/account/internal/pkg/jwt"
)

type PasswordChangeInput struct {
	OldPassword string
	NewPassword string `validate:"required,password"`
}

func (s *Usecase) PasswordChange(ctx context.Context, in PasswordChangeInput) error {
	ctx, span := s.startSpan(ctx, "PasswordChange")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("Unauthorized, please login", goerror.CodeUnauthorized)
	}

	if in.OldPassword == "" {
		return goerror.NewBusiness("Old password is required", goerror.CodeInvalidInput)
	}

	cred, err := s.repoDB.GetUserCredentialByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", clm.UserID)
		return goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user credential by id", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if !s.verifyPassword(cred.Password, in.OldPassword) {
		slog.WarnContext(ctx, "current password mismatch", "user_id", cred.ID)
		return goerror.NewBusiness("Old password is incorrect", goerror.CodeInvalidInput)
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	newHash, err := s.argon2id.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "user_id", cred.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateUserPasswordByID(ctx, cred.ID, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to update user password", "user_id", cred.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
