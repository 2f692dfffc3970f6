package ports

import (
	"context"

	"github.com/intraworks/dochub/internal/core/domain"
)

// UpsertGrantParams carries a share write. Nil flags mean "not provided":
// on first creation CanView defaults to true and the other flags to false;
// on update only the provided flags are touched.
type UpsertGrantParams struct {
	ResourceID string
	UserID     string
	CanView    *bool
	CanEdit    *bool
	CanDelete  *bool
}

// ShareRepository defines persistence for share grants. Uniqueness of the
// (resource, user) pair is enforced by the storage layer and Upsert is a
// single atomic write, so concurrent shares cannot duplicate a grant.
type ShareRepository interface {
	Upsert(ctx context.Context, params UpsertGrantParams) (*domain.ShareGrant, error)
	// Find returns domain.ErrGrantNotFound when no grant exists for the pair.
	Find(ctx context.Context, resourceID, userID string) (*domain.ShareGrant, error)
	// Remove deletes the grant if present; removing an absent grant is a no-op.
	Remove(ctx context.Context, resourceID, userID string) error
	// RemoveByResource deletes every grant referencing the resource.
	RemoveByResource(ctx context.Context, resourceID string) error
	// ListViewableResourceIDs returns the ids of all resources the user holds
	// a view grant on.
	ListViewableResourceIDs(ctx context.Context, userID string) ([]string, error)
}
