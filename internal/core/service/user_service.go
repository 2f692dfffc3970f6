package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
)

// UserService implements administrative user management.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Promote grants the admin role to the target user.
func (s *UserService) Promote(ctx context.Context, targetID string) (*domain.User, error) {
	user, err := s.repo.UpdateRole(ctx, targetID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", targetID).Msg("user promoted to admin")
	return user, nil
}

// Demote revokes the admin role. Demoting one's own account is always
// rejected so the last admin cannot lock everyone out by accident.
func (s *UserService) Demote(ctx context.Context, actor domain.Actor, targetID string) (*domain.User, error) {
	if actor.ID == targetID {
		return nil, domain.ErrSelfDemotion
	}
	user, err := s.repo.UpdateRole(ctx, targetID, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", targetID).Msg("user demoted to user role")
	return user, nil
}
