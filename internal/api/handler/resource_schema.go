package handler

import (
	"time"

	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type shareRequest struct {
	Email     string `json:"email" validate:"required,email"`
	CanView   *bool  `json:"can_view"`
	CanEdit   *bool  `json:"can_edit"`
	CanDelete *bool  `json:"can_delete"`
}

type visibilityRequest struct {
	IsPublic *bool `json:"is_public" validate:"required"`
}

type updateResourceRequest struct {
	Title      *string `json:"title"`
	CategoryID *string `json:"category_id"`
}

type resourceResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	IsPublic    bool   `json:"is_public"`
	CategoryID  string `json:"category_id,omitempty"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	CreatedAt   string `json:"created_at"`
	DownloadURL string `json:"download_url,omitempty"`
}

type listResourcesResponse struct {
	Items []resourceResponse `json:"items"`
	Total int                `json:"total"`
}

type shareResponse struct {
	ResourceID string `json:"resource_id"`
	UserID     string `json:"user_id"`
	CanView    bool   `json:"can_view"`
	CanEdit    bool   `json:"can_edit"`
	CanDelete  bool   `json:"can_delete"`
}

func toResourceResponse(v ports.ResourceView) resourceResponse {
	return resourceResponse{
		ID:          v.ID,
		Kind:        string(v.Kind),
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		IsPublic:    v.IsPublic,
		CategoryID:  v.CategoryID,
		ContentType: v.ContentType,
		Size:        v.Size,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
		DownloadURL: v.DownloadURL,
	}
}

func toShareResponse(g *domain.ShareGrant) shareResponse {
	return shareResponse{
		ResourceID: g.ResourceID,
		UserID:     g.UserID,
		CanView:    g.CanView,
		CanEdit:    g.CanEdit,
		CanDelete:  g.CanDelete,
	}
}
