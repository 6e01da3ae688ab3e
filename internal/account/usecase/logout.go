package usecase

import (
	"context"
	"log/slog"

	"github.com/jzmart/account/internal/pkg/goerror"
	"github.com/jzmart/account/internal/pkg/jwt"
)

// Logout ends the session. Sessions are stateless tokens, so the caller only
// has to drop the cookie.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("Unauthorized, please login", goerror.CodeUnauthorized)
	}

	slog.InfoContext(ctx, "user logged out", "user_id", clm.UserID)

	return nil
}
