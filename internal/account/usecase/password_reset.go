package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jzmart/account/internal/account/entity"
	"github.com/jzmart/account/internal/pkg/goerror"
)

type PasswordResetInput struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,password"`
	OTP      string `validate:"required,otp"`
	Purpose  string `validate:"omitempty,eq=FORGOT_PASSWORD"`
}

func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	exists, err := s.repoDB.ExistsUserByEmail(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check user exists", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}
	if !exists {
		return goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	}

	otp, err := s.otp.Verify(ctx, in.Email, entity.PurposeForgotPassword, in.OTP)
	if err != nil {
		return otpError(ctx, err, "failed to verify reset otp", "email", in.Email)
	}

	hashed, err := s.argon2id.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "error", err)
		return goerror.NewServer(err)
	}

	err = s.repoDB.UpdateUserPassword(ctx, in.Email, string(hashed))
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update user password", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.otp.Consume(ctx, otp); err != nil {
		slog.ErrorContext(ctx, "failed to consume reset otp", "otp_id", otp.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
