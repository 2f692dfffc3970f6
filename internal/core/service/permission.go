package service

import (
	"context"
	"errors"

	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
)

// PermissionResolver loads the actor's share grant for a resource and applies
// the access decision. Every route goes through this one path; handlers never
// re-implement ownership or visibility checks.
type PermissionResolver struct {
	shares ports.ShareRepository
}

func NewPermissionResolver(shares ports.ShareRepository) *PermissionResolver {
	return &PermissionResolver{shares: shares}
}

// Authorize decides whether actor may perform op on res. The grant lookup is
// skipped when the decision cannot depend on it (admin, owner, public view).
func (p *PermissionResolver) Authorize(ctx context.Context, actor domain.Actor, res *domain.Resource, op domain.Operation) error {
	var grant *domain.ShareGrant

	if res != nil && !actor.IsAdmin() && actor.ID != res.OwnerID && !res.IsPublic {
		g, err := p.shares.Find(ctx, res.ID, actor.ID)
		switch {
		case err == nil:
			grant = g
		case errors.Is(err, domain.ErrGrantNotFound):
			// no grant, decided below
		default:
			return err
		}
	}

	return domain.Authorize(actor, res, grant, op)
}
