package ports

import (
	"context"
	"time"

	"github.com/intraworks/dochub/internal/core/domain"
)

// ToolInput carries the fields for creating or updating a tool.
type ToolInput struct {
	Name             string
	Description      string
	Responsible      string
	ResponsibleEmail string
	AcquisitionDate  time.Time
	ExpirationDate   time.Time
}

// ToolService defines the tool/license management use-cases.
type ToolService interface {
	Create(ctx context.Context, input ToolInput) (*domain.Tool, error)
	Update(ctx context.Context, id string, input ToolInput) (*domain.Tool, error)
	Get(ctx context.Context, id string) (*domain.Tool, error)
	List(ctx context.Context) ([]*domain.Tool, error)
	Delete(ctx context.Context, id string) error
}
