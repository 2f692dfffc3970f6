package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intraworks/dochub/internal/core/domain"
)

// actorFromContext extracts the identity injected by the Auth middleware and
// fast-fails before any service call: both claims must be present, their
// absence means the middleware did not run or the token was malformed.
func actorFromContext(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Actor{ID: userID, Role: role}, nil
}
