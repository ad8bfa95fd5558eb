package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

type UserHandler struct {
	identity ports.IdentityService
	scores   ports.ScoreService
	users    ports.UserRepository
	presence ports.Presence
}

func NewUserHandler(identity ports.IdentityService, scores ports.ScoreService, users ports.UserRepository, presence ports.Presence) *UserHandler {
	return &UserHandler{identity: identity, scores: scores, users: users, presence: presence}
}

type updateProfileRequest struct {
	Name     string `json:"name" validate:"required"`
	Avatar   string `json:"avatar,omitempty"`
	Birthday string `json:"birthday,omitempty"`
}

type profileResponse struct {
	*domain.User
	Online bool `json:"online"`
}

// Me resolves the caller's own profile from its token, creating the
// default profile on first contact.
//
// @Summary      Resolve own profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	user, err := h.identity.Resolve(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Profile returns another user's profile with its live presence flag.
//
// @Summary      Fetch a user profile
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	if _, err := ctxUID(c); err != nil {
		return err
	}
	id := c.Param("id")
	user, err := h.users.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	online, err := h.presence.IsOnline(c.Request().Context(), id)
	if err != nil {
		online = false
	}
	return c.JSON(http.StatusOK, profileResponse{User: user, Online: online})
}

// UpdateProfile writes the caller's own display fields.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Display fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /users/me [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.users.UpdateProfile(ctx, uid, req.Name, req.Avatar, req.Birthday); err != nil {
		return err
	}
	user, err := h.users.FindByID(ctx, uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List returns all user profiles, for contact pickers.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	if _, err := ctxUID(c); err != nil {
		return err
	}
	users, err := h.users.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Leaderboard returns the top users by score.
//
// @Summary      Score leaderboard
// @Tags         scores
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /leaderboard [get]
func (h *UserHandler) Leaderboard(c echo.Context) error {
	users, err := h.scores.Leaderboard(c.Request().Context(), 100)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
