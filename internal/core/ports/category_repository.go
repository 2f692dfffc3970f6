package ports

import (
	"context"

	"github.com/intraworks/dochub/internal/core/domain"
)

// CategoryRepository defines persistence for the category reference data.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}
