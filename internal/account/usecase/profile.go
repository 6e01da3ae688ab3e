package usecase

import (
	"context"

	"github.com/jzmart/account/internal/account/entity"
)

func (s *Usecase) Profile(ctx context.Context) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	return s.currentUser(ctx)
}
