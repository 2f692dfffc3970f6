package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
)

// ResourceService implements the post/training use-cases. Both kinds share
// one implementation; the kind only selects the collection partition and the
// object-key prefix.
type ResourceService struct {
	resources ports.ResourceRepository
	shares    ports.ShareRepository
	users     ports.UserRepository
	objects   ports.ObjectStore
	resolver  *PermissionResolver
	urlTTL    time.Duration
	logger    zerolog.Logger
}

func NewResourceService(
	resources ports.ResourceRepository,
	shares ports.ShareRepository,
	users ports.UserRepository,
	objects ports.ObjectStore,
	resolver *PermissionResolver,
	urlTTL time.Duration,
	logger zerolog.Logger,
) *ResourceService {
	if urlTTL <= 0 {
		urlTTL = 15 * time.Minute
	}
	return &ResourceService{
		resources: resources,
		shares:    shares,
		users:     users,
		objects:   objects,
		resolver:  resolver,
		urlTTL:    urlTTL,
		logger:    logger,
	}
}

// Upload stores the file content, then persists the resource row owned by
// the caller.
func (s *ResourceService) Upload(ctx context.Context, input ports.UploadResourceInput) (*ports.ResourceView, error) {
	if input.Title == "" || input.Content == nil {
		return nil, fmt.Errorf("%w: title and file are required", domain.ErrValidation)
	}

	key := objectKey(input.Kind, input.FileName)
	if err := s.objects.Put(ctx, key, input.Content, input.ContentType); err != nil {
		return nil, fmt.Errorf("upload %s: %w", input.Kind, err)
	}

	now := time.Now().UTC()
	res := &domain.Resource{
		Kind:        input.Kind,
		OwnerID:     input.Owner.ID,
		Title:       input.Title,
		IsPublic:    input.IsPublic,
		CategoryID:  input.CategoryID,
		ObjectKey:   key,
		ContentType: input.ContentType,
		Size:        input.Size,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.resources.Create(ctx, res)
	if err != nil {
		// best-effort cleanup of the orphaned object
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			s.logger.Warn().Err(delErr).Str("key", key).Msg("failed to clean up object after insert failure")
		}
		return nil, err
	}

	s.logger.Info().
		Str("kind", string(input.Kind)).
		Str("id", created.ID).
		Str("owner_id", input.Owner.ID).
		Msg("resource uploaded")

	return s.view(created, ""), nil
}

// Get returns the resource with a signed download URL after a view check.
func (s *ResourceService) Get(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor) (*ports.ResourceView, error) {
	res, err := s.resources.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.Authorize(ctx, actor, res, domain.OpView); err != nil {
		return nil, err
	}

	url, err := s.objects.SignedURL(ctx, res.ObjectKey, s.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("sign url: %w", err)
	}
	return s.view(res, url), nil
}

// List returns every resource visible to the actor: everything for admins,
// otherwise public resources, own resources, and view-shared resources.
func (s *ResourceService) List(ctx context.Context, kind domain.ResourceKind, actor domain.Actor, categoryID string) ([]ports.ResourceView, error) {
	filter := ports.ListResourcesFilter{Kind: kind, CategoryID: categoryID}
	if !actor.IsAdmin() {
		sharedIDs, err := s.shares.ListViewableResourceIDs(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		filter.ViewerID = actor.ID
		filter.SharedResourceIDs = sharedIDs
	}

	items, err := s.resources.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]ports.ResourceView, 0, len(items))
	for _, res := range items {
		views = append(views, *s.view(res, ""))
	}
	return views, nil
}

// Update edits title/category after an edit check.
func (s *ResourceService) Update(ctx context.Context, input ports.UpdateResourceInput) (*ports.ResourceView, error) {
	res, err := s.resources.FindByID(ctx, input.Kind, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.Authorize(ctx, input.Actor, res, domain.OpEdit); err != nil {
		return nil, err
	}

	updated, err := s.resources.UpdateMeta(ctx, input.Kind, input.ID, input.Title, input.CategoryID)
	if err != nil {
		return nil, err
	}
	return s.view(updated, ""), nil
}

// SetVisibility toggles isPublic. The check rides the edit path: visibility
// changes are mutations even though they carry no content.
func (s *ResourceService) SetVisibility(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor, isPublic bool) (*ports.ResourceView, error) {
	res, err := s.resources.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.Authorize(ctx, actor, res, domain.OpEdit); err != nil {
		return nil, err
	}

	updated, err := s.resources.SetVisibility(ctx, kind, id, isPublic)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("kind", string(kind)).
		Str("id", id).
		Bool("is_public", isPublic).
		Msg("resource visibility changed")

	return s.view(updated, ""), nil
}

// Delete removes the resource and everything hanging off it: share grants
// first, then the stored object (best effort, failures are logged and do not
// abort the row deletion), then the row itself. The steps are not wrapped in
// a transaction; a crash mid-way can leave an orphaned object.
func (s *ResourceService) Delete(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor) error {
	res, err := s.resources.FindByID(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := s.resolver.Authorize(ctx, actor, res, domain.OpDelete); err != nil {
		return err
	}

	if err := s.shares.RemoveByResource(ctx, res.ID); err != nil {
		return fmt.Errorf("delete %s: remove grants: %w", kind, err)
	}

	if err := s.objects.Delete(ctx, res.ObjectKey); err != nil {
		s.logger.Warn().Err(err).
			Str("kind", string(kind)).
			Str("id", id).
			Str("key", res.ObjectKey).
			Msg("object delete failed, removing row anyway")
	}

	if err := s.resources.Delete(ctx, kind, id); err != nil {
		return err
	}

	s.logger.Info().Str("kind", string(kind)).Str("id", id).Msg("resource deleted")
	return nil
}

// Share upserts a grant for the user behind email. Sharing is managed by
// whoever may edit the resource. First creation defaults to view-only;
// updates touch only the flags the caller provided.
func (s *ResourceService) Share(ctx context.Context, input ports.ShareResourceInput) (*domain.ShareGrant, error) {
	res, err := s.resources.FindByID(ctx, input.Kind, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.Authorize(ctx, input.Actor, res, domain.OpEdit); err != nil {
		return nil, err
	}

	target, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, err
	}

	grant, err := s.shares.Upsert(ctx, ports.UpsertGrantParams{
		ResourceID: res.ID,
		UserID:     target.ID,
		CanView:    input.CanView,
		CanEdit:    input.CanEdit,
		CanDelete:  input.CanDelete,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("resource_id", res.ID).
		Str("user_id", target.ID).
		Msg("share grant upserted")

	return grant, nil
}

// Unshare removes the grant for (resource, user). Removing an absent grant
// succeeds.
func (s *ResourceService) Unshare(ctx context.Context, kind domain.ResourceKind, id string, actor domain.Actor, userID string) error {
	res, err := s.resources.FindByID(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := s.resolver.Authorize(ctx, actor, res, domain.OpEdit); err != nil {
		return err
	}
	return s.shares.Remove(ctx, res.ID, userID)
}

func (s *ResourceService) view(res *domain.Resource, url string) *ports.ResourceView {
	return &ports.ResourceView{
		ID:          res.ID,
		Kind:        res.Kind,
		OwnerID:     res.OwnerID,
		Title:       res.Title,
		IsPublic:    res.IsPublic,
		CategoryID:  res.CategoryID,
		ContentType: res.ContentType,
		Size:        res.Size,
		CreatedAt:   res.CreatedAt,
		DownloadURL: url,
	}
}

// objectKey builds the object-store key: <kind>/<uuid><original extension>.
func objectKey(kind domain.ResourceKind, fileName string) string {
	return fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), strings.ToLower(path.Ext(fileName)))
}
