package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/intraworks/dochub/internal/core/ports"
)

// ToolHandler serves the admin-only tool/license management routes.
type ToolHandler struct {
	service ports.ToolService
}

func NewToolHandler(service ports.ToolService) *ToolHandler {
	return &ToolHandler{service: service}
}

type toolRequest struct {
	Name             string    `json:"name"              validate:"required"`
	Description      string    `json:"description"`
	Responsible      string    `json:"responsible"       validate:"required"`
	ResponsibleEmail string    `json:"responsible_email" validate:"required,email"`
	AcquisitionDate  time.Time `json:"acquisition_date"  validate:"required"`
	ExpirationDate   time.Time `json:"expiration_date"   validate:"required"`
}

func (r toolRequest) toInput() ports.ToolInput {
	return ports.ToolInput{
		Name:             r.Name,
		Description:      r.Description,
		Responsible:      r.Responsible,
		ResponsibleEmail: r.ResponsibleEmail,
		AcquisitionDate:  r.AcquisitionDate,
		ExpirationDate:   r.ExpirationDate,
	}
}

// List handles GET /api/tools.
//
// @Summary      List tools
// @Tags         tools
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   object
// @Failure      403  {object}  errorResponse
// @Router       /api/tools [get]
func (h *ToolHandler) List(c echo.Context) error {
	tools, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tools)
}

// Get handles GET /api/tools/:id.
//
// @Summary      Get a tool
// @Tags         tools
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Tool id"
// @Success      200  {object}  object
// @Failure      404  {object}  errorResponse
// @Router       /api/tools/{id} [get]
func (h *ToolHandler) Get(c echo.Context) error {
	tool, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tool)
}

// Create handles POST /api/tools.
//
// @Summary      Create a tool
// @Tags         tools
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  toolRequest  true  "Tool details"
// @Success      201  {object}  object
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/tools [post]
func (h *ToolHandler) Create(c echo.Context) error {
	var req toolRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tool, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tool)
}

// Update handles PUT /api/tools/:id.
//
// @Summary      Update a tool
// @Tags         tools
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string       true  "Tool id"
// @Param        body  body  toolRequest  true  "Tool details"
// @Success      200  {object}  object
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tools/{id} [put]
func (h *ToolHandler) Update(c echo.Context) error {
	var req toolRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tool, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tool)
}

// Delete handles DELETE /api/tools/:id.
//
// @Summary      Delete a tool
// @Tags         tools
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Tool id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /api/tools/{id} [delete]
func (h *ToolHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
