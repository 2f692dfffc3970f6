package ports

import (
	"context"

	"github.com/intraworks/dochub/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateRole sets the user's role and returns the updated user.
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
}
