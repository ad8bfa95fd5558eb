package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

// AdminHandler fronts the role authority. Each operation passes the acting
// principal through so the service can re-check its privilege server-side.
type AdminHandler struct {
	roles ports.RoleService
}

func NewAdminHandler(roles ports.RoleService) *AdminHandler {
	return &AdminHandler{roles: roles}
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin mitarbeiter"`
}

type setLockRequest struct {
	Locked bool `json:"locked"`
}

// SetRole changes the target user's role.
//
// @Summary      Set a user's role
// @Tags         admin
// @Accept       json
// @Param        id    path  string          true  "Target user ID"
// @Param        body  body  setRoleRequest  true  "New role"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/users/{id}/role [put]
func (h *AdminHandler) SetRole(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.roles.SetRole(c.Request().Context(), uid, c.Param("id"), req.Role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetLock locks or unlocks the target account.
//
// @Summary      Lock or unlock a user
// @Tags         admin
// @Accept       json
// @Param        id    path  string          true  "Target user ID"
// @Param        body  body  setLockRequest  true  "Lock flag"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /admin/users/{id}/lock [put]
func (h *AdminHandler) SetLock(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req setLockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.roles.Lock(c.Request().Context(), uid, c.Param("id"), req.Locked); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes the target user and cascades to its posts.
//
// @Summary      Delete a user
// @Tags         admin
// @Param        id  path  string  true  "Target user ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	if err := h.roles.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
