package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

type FeedHandler struct {
	feed ports.FeedService
}

func NewFeedHandler(feed ports.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

type createPostRequest struct {
	Content string `json:"content" validate:"required"`
	Image   string `json:"image,omitempty"`
}

// Create publishes a post to the feed and credits the author.
//
// @Summary      Create a post
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        body  body      createPostRequest  true  "Post content"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  map[string]string
// @Router       /feed [post]
func (h *FeedHandler) Create(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.feed.CreatePost(c.Request().Context(), uid, req.Content, req.Image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// List returns the latest feed page.
//
// @Summary      Fetch the feed
// @Tags         feed
// @Produce      json
// @Success      200  {array}  domain.Post
// @Router       /feed [get]
func (h *FeedHandler) List(c echo.Context) error {
	if _, err := ctxUID(c); err != nil {
		return err
	}
	posts, err := h.feed.Feed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Like increments a post's like counter.
//
// @Summary      Like a post
// @Tags         feed
// @Param        id  path  string  true  "Post ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /feed/{id}/like [post]
func (h *FeedHandler) Like(c echo.Context) error {
	if _, err := ctxUID(c); err != nil {
		return err
	}
	if err := h.feed.Like(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a post. Admin route.
//
// @Summary      Delete a post
// @Tags         feed
// @Param        id  path  string  true  "Post ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /admin/feed/{id} [delete]
func (h *FeedHandler) Delete(c echo.Context) error {
	if _, err := ctxUID(c); err != nil {
		return err
	}
	if err := h.feed.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
