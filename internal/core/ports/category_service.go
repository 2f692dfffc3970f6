package ports

import (
	"context"

	"github.com/intraworks/dochub/internal/core/domain"
)

// CategoryService exposes the category reference data.
type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}
