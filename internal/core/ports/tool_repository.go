package ports

import (
	"context"
	"time"

	"github.com/intraworks/dochub/internal/core/domain"
)

// ToolRepository defines persistence for tools and licenses.
type ToolRepository interface {
	Create(ctx context.Context, tool *domain.Tool) (*domain.Tool, error)
	FindByID(ctx context.Context, id string) (*domain.Tool, error)
	List(ctx context.Context) ([]*domain.Tool, error)
	Update(ctx context.Context, tool *domain.Tool) (*domain.Tool, error)
	Delete(ctx context.Context, id string) error
	// MarkNotified records the timestamp of the last expiration reminder.
	MarkNotified(ctx context.Context, id string, ts time.Time) error
}
