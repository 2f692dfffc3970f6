package domain

import "time"

// ShareGrant is a per-user, per-resource permission record. At most one grant
// exists per (resource, user) pair; the pair is unique at the storage layer.
type ShareGrant struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	UserID     string    `json:"user_id"`
	CanView    bool      `json:"can_view"`
	CanEdit    bool      `json:"can_edit"`
	CanDelete  bool      `json:"can_delete"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
