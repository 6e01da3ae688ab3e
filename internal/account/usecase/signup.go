package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jzmart/account/internal/account/entity"
	"github.com/jzmart/account/internal/pkg/goerror"
)

type SignupInput struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,password"`
	OTP      string `validate:"required,otp"`
	Purpose  string `validate:"omitempty,eq=REGISTER"`
}

type SignupOutput struct {
	User    *entity.User
	Session *Session
}

func (s *Usecase) Signup(ctx context.Context, in SignupInput) (*SignupOutput, error) {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	exists, err := s.repoDB.ExistsUserByEmail(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check user exists", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if exists {
		return nil, goerror.NewBusiness("User already exists.", goerror.CodeConflict)
	}

	otp, err := s.otp.Verify(ctx, in.Email, entity.PurposeRegister, in.OTP)
	if err != nil {
		return nil, otpError(ctx, err, "failed to verify signup otp", "email", in.Email)
	}

	hashed, err := s.argon2id.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	user, err := s.repoDB.CreateUser(ctx, entity.NewUser{
		ID:       s.uid.Generate(),
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Role:     entity.RoleUser,
	})
	if errors.Is(err, goerror.ErrConflict) {
		return nil, goerror.NewBusiness("User already exists.", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	session, err := s.newSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.otp.Consume(ctx, otp); err != nil {
		slog.ErrorContext(ctx, "failed to consume signup otp", "otp_id", otp.ID, "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SignupOutput{User: user, Session: session}, nil
}
