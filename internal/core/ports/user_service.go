package ports

import (
	"context"

	"github.com/intraworks/dochub/internal/core/domain"
)

// UserService defines administrative user operations.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Promote(ctx context.Context, targetID string) (*domain.User, error)
	// Demote rejects actor demoting their own account.
	Demote(ctx context.Context, actor domain.Actor, targetID string) (*domain.User, error)
}
