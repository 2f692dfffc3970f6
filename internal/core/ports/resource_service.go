package ports

import (
	"context"
	"io"
	"time"

	"github.com/intraworks/dochub/internal/core/domain"
)

// UploadResourceInput carries everything needed to create a post or training.
type UploadResourceInput struct {
	Kind        domain.ResourceKind
	Owner       domain.Actor
	Title       string
	CategoryID  string
	IsPublic    bool
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ResourceView is the resource representation returned to handlers. The
// download URL is a signed object-store link and is only populated on
// single-resource reads.
type ResourceView struct {
	ID          string
	Kind        domain.ResourceKind
	OwnerID     string
	Title       string
	IsPublic    bool
	CategoryID  string
	ContentType string
	Size        int64
	CreatedAt   time.Time
	DownloadURL string
}

// ShareResourceInput carries a share upsert. Nil flags are "not provided".
type ShareResourceInput struct {
	Kind      domain.ResourceKind
	ID        string
	Actor     domain.Actor
	Email     string
	CanView   *bool
	CanEdit   *bool
	CanDelete *bool
}

// UpdateResourceInput carries a metadata edit; nil fields are left untouched.
type UpdateResourceInput struct {
	Kind       domain.ResourceKind
	ID         string
	Actor      domain.Actor
	Title      *string
	CategoryID *string
}

// ResourceService defines the use-cases shared by posts and trainings.
type ResourceService interface {
	Upload(ctx context.Context, input UploadResourceInput) (*ResourceView, error)
	Get(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor) (*ResourceView, error)
	List(ctx context.Context, kind domain.ResourceKind, actor domain.Actor, categoryID string) ([]ResourceView, error)
	Update(ctx context.Context, input UpdateResourceInput) (*ResourceView, error)
	SetVisibility(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor, isPublic bool) (*ResourceView, error)
	Delete(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor) error
	Share(ctx context.Context, input ShareResourceInput) (*domain.ShareGrant, error)
	Unshare(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor, userID string) error
}
