package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

type SickLeaveHandler struct {
	sickLeave ports.SickLeaveService
}

func NewSickLeaveHandler(sickLeave ports.SickLeaveService) *SickLeaveHandler {
	return &SickLeaveHandler{sickLeave: sickLeave}
}

type sickLeaveRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type reviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// Submit records a sick-leave entry for the caller.
//
// @Summary      Submit sick leave
// @Tags         sickleave
// @Accept       json
// @Produce      json
// @Param        body  body      sickLeaveRequest  true  "Leave period"
// @Success      201   {object}  domain.SickLeaveEntry
// @Failure      400   {object}  map[string]string
// @Router       /sickleave [post]
func (h *SickLeaveHandler) Submit(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req sickLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.sickLeave.Submit(c.Request().Context(), uid, req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// Review approves or rejects a pending entry.
//
// @Summary      Review a sick-leave entry
// @Tags         sickleave
// @Accept       json
// @Param        id    path  string         true  "Entry ID"
// @Param        body  body  reviewRequest  true  "Decision"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /admin/sickleave/{id}/review [post]
func (h *SickLeaveHandler) Review(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := domain.SickLeaveStatus(req.Status)
	if err := h.sickLeave.Review(c.Request().Context(), uid, c.Param("id"), status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns the caller's entries, or all entries for admin tokens.
//
// @Summary      List sick-leave entries
// @Tags         sickleave
// @Produce      json
// @Success      200  {array}  domain.SickLeaveEntry
// @Router       /sickleave [get]
func (h *SickLeaveHandler) List(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	entries, err := h.sickLeave.ListFor(c.Request().Context(), uid, ctxIsAdmin(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
