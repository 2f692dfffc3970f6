package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/intraworks/dochub/internal/api/metrics"
	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
)

// ResourceHandler serves one resource kind. Posts and trainings register two
// instances of the same handler; the routes and checks are identical.
type ResourceHandler struct {
	service   ports.ResourceService
	kind      domain.ResourceKind
	maxUpload int64
}

func NewResourceHandler(service ports.ResourceService, kind domain.ResourceKind, maxUpload int64) *ResourceHandler {
	return &ResourceHandler{service: service, kind: kind, maxUpload: maxUpload}
}

// Upload handles POST /api/{posts,trainings} — multipart file upload.
//
// @Summary      Upload a resource
// @Tags         resources
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file       formData  file    true   "File content"
// @Param        title      formData  string  true   "Title"
// @Param        category_id formData string  false  "Category id"
// @Param        is_public  formData  bool    false  "Publicly visible"
// @Success      201  {object}  resourceResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/posts [post]
func (h *ResourceHandler) Upload(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if file.Size > h.maxUpload {
		return echo.NewHTTPError(http.StatusBadRequest, "file exceeds upload limit")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	isPublic, _ := strconv.ParseBool(c.FormValue("is_public"))
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	view, err := h.service.Upload(c.Request().Context(), ports.UploadResourceInput{
		Kind:        h.kind,
		Owner:       actor,
		Title:       c.FormValue("title"),
		CategoryID:  c.FormValue("category_id"),
		IsPublic:    isPublic,
		FileName:    file.Filename,
		ContentType: contentType,
		Size:        file.Size,
		Content:     src,
	})
	if err != nil {
		return err
	}

	metrics.UploadsTotal.WithLabelValues(string(h.kind)).Inc()
	return c.JSON(http.StatusCreated, toResourceResponse(*view))
}

// List handles GET /api/{posts,trainings}.
//
// @Summary      List visible resources
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        category_id  query  string  false  "Filter by category"
// @Success      200  {object}  listResourcesResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/posts [get]
func (h *ResourceHandler) List(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), h.kind, actor, c.QueryParam("category_id"))
	if err != nil {
		return err
	}

	items := make([]resourceResponse, 0, len(views))
	for _, v := range views {
		items = append(items, toResourceResponse(v))
	}
	return c.JSON(http.StatusOK, listResourcesResponse{Items: items, Total: len(items)})
}

// Get handles GET /api/{posts,trainings}/:id — view check, signed URL.
//
// @Summary      Get a resource with a signed download link
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Resource id"
// @Success      200  {object}  resourceResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id} [get]
func (h *ResourceHandler) Get(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), h.kind, c.Param("id"), actor)
	if err != nil {
		return h.countDenial(domain.OpView, err)
	}
	return c.JSON(http.StatusOK, toResourceResponse(*view))
}

// Update handles PATCH /api/{posts,trainings}/:id — metadata edit.
//
// @Summary      Update resource metadata
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "Resource id"
// @Param        body  body  updateResourceRequest  true  "Fields to update"
// @Success      200  {object}  resourceResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id} [patch]
func (h *ResourceHandler) Update(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req updateResourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.service.Update(c.Request().Context(), ports.UpdateResourceInput{
		Kind:       h.kind,
		ID:         c.Param("id"),
		Actor:      actor,
		Title:      req.Title,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return h.countDenial(domain.OpEdit, err)
	}
	return c.JSON(http.StatusOK, toResourceResponse(*view))
}

// SetVisibility handles PATCH /api/{posts,trainings}/:id/visibility.
// Visibility changes ride the edit path, same as any other mutation.
//
// @Summary      Toggle resource visibility
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "Resource id"
// @Param        body  body  visibilityRequest  true  "Visibility flag"
// @Success      200  {object}  resourceResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id}/visibility [patch]
func (h *ResourceHandler) SetVisibility(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req visibilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.SetVisibility(c.Request().Context(), h.kind, c.Param("id"), actor, *req.IsPublic)
	if err != nil {
		return h.countDenial(domain.OpEdit, err)
	}
	return c.JSON(http.StatusOK, toResourceResponse(*view))
}

// Delete handles DELETE /api/{posts,trainings}/:id.
//
// @Summary      Delete a resource and its grants
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Resource id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id} [delete]
func (h *ResourceHandler) Delete(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), h.kind, c.Param("id"), actor); err != nil {
		return h.countDenial(domain.OpDelete, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Share handles POST /api/{posts,trainings}/:id/share — grant upsert.
//
// @Summary      Share a resource with another user
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string        true  "Resource id"
// @Param        body  body  shareRequest  true  "Target user and flags"
// @Success      200  {object}  shareResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id}/share [post]
func (h *ResourceHandler) Share(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req shareRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grant, err := h.service.Share(c.Request().Context(), ports.ShareResourceInput{
		Kind:      h.kind,
		ID:        c.Param("id"),
		Actor:     actor,
		Email:     req.Email,
		CanView:   req.CanView,
		CanEdit:   req.CanEdit,
		CanDelete: req.CanDelete,
	})
	if err != nil {
		return h.countDenial(domain.OpEdit, err)
	}

	metrics.ShareOperationsTotal.WithLabelValues("upsert").Inc()
	return c.JSON(http.StatusOK, toShareResponse(grant))
}

// Unshare handles DELETE /api/{posts,trainings}/:id/share/:userId.
// Removing an absent grant still returns 204.
//
// @Summary      Remove a share grant
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "Resource id"
// @Param        userId  path  string  true  "Target user id"
// @Success      204  "removed"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id}/share/{userId} [delete]
func (h *ResourceHandler) Unshare(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	if err := h.service.Unshare(c.Request().Context(), h.kind, c.Param("id"), actor, c.Param("userId")); err != nil {
		return h.countDenial(domain.OpEdit, err)
	}

	metrics.ShareOperationsTotal.WithLabelValues("remove").Inc()
	return c.NoContent(http.StatusNoContent)
}

// countDenial tracks resolver denials before handing the error back to the
// boundary error handler.
func (h *ResourceHandler) countDenial(op domain.Operation, err error) error {
	if errors.Is(err, domain.ErrForbidden) {
		metrics.AuthzDenialsTotal.WithLabelValues(string(op)).Inc()
	}
	return err
}
