package domain

import "time"

// ResourceKind discriminates the two sharable content types.
type ResourceKind string

const (
	KindPost     ResourceKind = "post"
	KindTraining ResourceKind = "training"
)

// Operation is the access class a request falls into. HTTP verbs map onto it:
// GET → OpView, PUT/PATCH → OpEdit, DELETE → OpDelete. Visibility toggles and
// share management ride the edit path.
type Operation string

const (
	OpView   Operation = "view"
	OpEdit   Operation = "edit"
	OpDelete Operation = "delete"
)

// Resource is a post or training: an uploaded file owned by exactly one user.
// Ownership never transfers.
type Resource struct {
	ID          string       `json:"id"`
	Kind        ResourceKind `json:"kind"`
	OwnerID     string       `json:"owner_id"`
	Title       string       `json:"title"`
	IsPublic    bool         `json:"is_public"`
	CategoryID  string       `json:"category_id,omitempty"`
	ObjectKey   string       `json:"-"`
	ContentType string       `json:"content_type"`
	Size        int64        `json:"size"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Authorize decides whether actor may perform op on res given the actor's
// share grant (nil when none exists). It is a pure function of its inputs.
//
// Decision order:
//  1. admins may do anything
//  2. a missing resource is NotFound, never Forbidden
//  3. the owner may do anything
//  4. public resources grant view to everyone and nothing else,
//     regardless of any grant
//  5. otherwise the grant's flags decide, one flag per operation
func Authorize(actor Actor, res *Resource, grant *ShareGrant, op Operation) error {
	if actor.IsAdmin() {
		return nil
	}
	if res == nil {
		return ErrResourceNotFound
	}
	if actor.ID == res.OwnerID {
		return nil
	}
	if res.IsPublic {
		if op == OpView {
			return nil
		}
		return ErrForbidden
	}
	if grant == nil {
		return ErrForbidden
	}
	switch op {
	case OpView:
		if grant.CanView {
			return nil
		}
	case OpEdit:
		if grant.CanEdit {
			return nil
		}
	case OpDelete:
		if grant.CanDelete {
			return nil
		}
	}
	return ErrForbidden
}
