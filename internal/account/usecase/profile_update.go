package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jzmart/account/internal/account/entity"
	"github.com/jzmart/account/internal/pkg/goerror"
	"github.com/jzmart/account/internal/pkg/jwt"
)

type ProfileUpdateInput struct {
	Name     *string `validate:"omitempty,min=2,max=100"`
	Phone    *string `validate:"omitempty,max=20"`
	City     *string `validate:"omitempty,max=100"`
	Address  *string `validate:"omitempty,max=255"`
	Interest *string `validate:"omitempty,max=255"`
}

func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Unauthorized, please login", goerror.CodeUnauthorized)
	}

	for _, f := range []*string{in.Name, in.Phone, in.City, in.Address, in.Interest} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	profile := entity.UserProfile{
		Name:     in.Name,
		Phone:    in.Phone,
		City:     in.City,
		Address:  in.Address,
		Interest: in.Interest,
	}
	if profile.IsEmpty() {
		return s.currentUser(ctx)
	}

	user, err := s.repoDB.UpdateUserProfile(ctx, clm.UserID, profile)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update user profile", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}
