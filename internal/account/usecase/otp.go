package usecase

import (
	"context"

	"github.com/jzmart/account/internal/account/entity"
	"github.com/jzmart/account/internal/pkg/goerror"
)

type SendOTPInput struct {
	Email   string `validate:"required,email,max=254"`
	Purpose string `validate:"required,oneof=REGISTER FORGOT_PASSWORD"`
}

// SendOTP issues a code for a new account or a password reset. Asking again
// while a code is live resends the same code with a renewed expiry.
func (s *Usecase) SendOTP(ctx context.Context, in SendOTPInput) error {
	ctx, span := s.startSpan(ctx, "SendOTP")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	purpose := entity.Purpose(in.Purpose)
	if err := s.otp.Issue(ctx, in.Email, purpose); err != nil {
		return otpError(ctx, err, "failed to issue otp", "purpose", purpose)
	}

	return nil
}

type VerifyOTPInput struct {
	Email   string `validate:"required,email,max=254"`
	Purpose string `validate:"required,oneof=REGISTER FORGOT_PASSWORD"`
	OTP     string `validate:"required,otp"`
}

// VerifyOTP checks a code without consuming it, so a client can confirm the
// code before collecting the rest of the form.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) error {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.otp.Verify(ctx, in.Email, entity.Purpose(in.Purpose), in.OTP); err != nil {
		return otpError(ctx, err, "failed to verify otp", "purpose", in.Purpose)
	}

	return nil
}
