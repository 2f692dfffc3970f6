package ports

import (
	"context"

	"github.com/intraworks/dochub/internal/core/domain"
)

// ListResourcesFilter carries the query parameters for listing resources.
// When ViewerID is empty the listing is unrestricted (admin); otherwise it is
// scoped to public resources, resources owned by the viewer, and resources in
// SharedResourceIDs (the viewer's view-grants, resolved by the caller).
type ListResourcesFilter struct {
	Kind              domain.ResourceKind
	ViewerID          string
	SharedResourceIDs []string
	CategoryID        string // optional
}

// ResourceRepository defines persistence for posts and trainings.
type ResourceRepository interface {
	Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error)
	// FindByID retrieves a resource of the given kind. A wrong-kind or
	// malformed id yields domain.ErrResourceNotFound.
	FindByID(ctx context.Context, kind domain.ResourceKind, id string) (*domain.Resource, error)
	List(ctx context.Context, filter ListResourcesFilter) ([]*domain.Resource, error)
	// UpdateMeta sets title and/or category; nil fields are left untouched.
	UpdateMeta(ctx context.Context, kind domain.ResourceKind, id string, title, categoryID *string) (*domain.Resource, error)
	SetVisibility(ctx context.Context, kind domain.ResourceKind, id string, isPublic bool) (*domain.Resource, error)
	Delete(ctx context.Context, kind domain.ResourceKind, id string) error
}
