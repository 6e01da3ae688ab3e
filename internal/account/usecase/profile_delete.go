package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jzmart/account/internal/pkg/goerror"
	"github.com/jzmart/account/internal/pkg/jwt"
)

func (s *Usecase) ProfileDelete(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "ProfileDelete")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("Unauthorized, please login", goerror.CodeUnauthorized)
	}

	avatarKey, err := s.repoDB.DeleteUser(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", clm.UserID)
		return goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete user", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	s.deleteAvatar(ctx, s.cfg.GetString("modules.account.avatar.bucket"), avatarKey)

	return nil
}
