package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

type ShiftHandler struct {
	shifts ports.ShiftService
}

func NewShiftHandler(shifts ports.ShiftService) *ShiftHandler {
	return &ShiftHandler{shifts: shifts}
}

type swapRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	ShiftTime   string `json:"shift_time" validate:"required"`
}

type tradeRequest struct {
	ShiftDate   string `json:"shift_date" validate:"required"`
	Description string `json:"description,omitempty"`
}

type assignRequest struct {
	VolunteerID string `json:"volunteer_id" validate:"required"`
}

// RequestSwap asks a specific colleague to take over a shift.
//
// @Summary      Request a shift swap
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Param        body  body      swapRequest  true  "Swap details"
// @Success      201   {object}  domain.ShiftSwapRequest
// @Failure      400   {object}  map[string]string
// @Router       /shifts/swaps [post]
func (h *ShiftHandler) RequestSwap(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req swapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	swap, err := h.shifts.RequestSwap(c.Request().Context(), uid, req.RecipientID, req.ShiftTime)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, swap)
}

// ApproveSwap accepts an incoming swap request. Recipient only.
//
// @Summary      Approve a swap request
// @Tags         shifts
// @Param        id  path  string  true  "Swap request ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /shifts/swaps/{id}/approve [post]
func (h *ShiftHandler) ApproveSwap(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	if err := h.shifts.ApproveSwap(c.Request().Context(), uid, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RejectSwap declines an incoming swap request. Recipient only.
//
// @Summary      Reject a swap request
// @Tags         shifts
// @Param        id  path  string  true  "Swap request ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /shifts/swaps/{id}/reject [post]
func (h *ShiftHandler) RejectSwap(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	if err := h.shifts.RejectSwap(c.Request().Context(), uid, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// IncomingSwaps lists swap requests addressed to the caller.
//
// @Summary      List incoming swap requests
// @Tags         shifts
// @Produce      json
// @Success      200  {array}  domain.ShiftSwapRequest
// @Router       /shifts/swaps [get]
func (h *ShiftHandler) IncomingSwaps(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	swaps, err := h.shifts.SwapsFor(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, swaps)
}

// OpenTrade publishes a shift anyone may volunteer for.
//
// @Summary      Open a shift trade
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Param        body  body      tradeRequest  true  "Trade details"
// @Success      201   {object}  domain.ShiftTrade
// @Router       /shifts/trades [post]
func (h *ShiftHandler) OpenTrade(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req tradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	trade, err := h.shifts.OpenTrade(c.Request().Context(), uid, req.ShiftDate, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, trade)
}

// Volunteer adds the caller to a trade's volunteer list.
//
// @Summary      Volunteer for a trade
// @Tags         shifts
// @Param        id  path  string  true  "Trade ID"
// @Success      204
// @Failure      422  {object}  map[string]string
// @Router       /shifts/trades/{id}/volunteer [post]
func (h *ShiftHandler) Volunteer(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	if err := h.shifts.Volunteer(c.Request().Context(), c.Param("id"), uid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignTrade picks a volunteer. Requester only.
//
// @Summary      Assign a trade to a volunteer
// @Tags         shifts
// @Accept       json
// @Param        id    path  string         true  "Trade ID"
// @Param        body  body  assignRequest  true  "Chosen volunteer"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /shifts/trades/{id}/assign [post]
func (h *ShiftHandler) AssignTrade(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.shifts.AssignTrade(c.Request().Context(), uid, c.Param("id"), req.VolunteerID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteTrade closes an assigned trade and credits the helper. Requester only.
//
// @Summary      Complete a trade
// @Tags         shifts
// @Param        id  path  string  true  "Trade ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /shifts/trades/{id}/complete [post]
func (h *ShiftHandler) CompleteTrade(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	if err := h.shifts.CompleteTrade(c.Request().Context(), uid, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// OpenTrades lists all trades still accepting volunteers.
//
// @Summary      List open trades
// @Tags         shifts
// @Produce      json
// @Success      200  {array}  domain.ShiftTrade
// @Router       /shifts/trades [get]
func (h *ShiftHandler) OpenTrades(c echo.Context) error {
	if _, err := ctxUID(c); err != nil {
		return err
	}
	trades, err := h.shifts.OpenTrades(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trades)
}
