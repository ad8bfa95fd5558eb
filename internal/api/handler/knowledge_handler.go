package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

type KnowledgeHandler struct {
	knowledge ports.KnowledgeService
}

func NewKnowledgeHandler(knowledge ports.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledge: knowledge}
}

type createArticleRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Create publishes a knowledge-base article.
//
// @Summary      Create an article
// @Tags         knowledge
// @Accept       json
// @Produce      json
// @Param        body  body      createArticleRequest  true  "Article"
// @Success      201   {object}  domain.KnowledgeArticle
// @Router       /knowledge [post]
func (h *KnowledgeHandler) Create(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.knowledge.CreateArticle(c.Request().Context(), uid, req.Title, req.Content, req.Category, req.Tags)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, article)
}

// Read returns one article and counts the view.
//
// @Summary      Read an article
// @Tags         knowledge
// @Produce      json
// @Param        id  path  string  true  "Article ID"
// @Success      200  {object}  domain.KnowledgeArticle
// @Failure      404  {object}  map[string]string
// @Router       /knowledge/{id} [get]
func (h *KnowledgeHandler) Read(c echo.Context) error {
	if _, err := ctxUID(c); err != nil {
		return err
	}
	article, err := h.knowledge.Read(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// Search filters articles by title or tag; an empty query returns all.
//
// @Summary      Search articles
// @Tags         knowledge
// @Produce      json
// @Param        q  query  string  false  "Search term"
// @Success      200  {array}  domain.KnowledgeArticle
// @Router       /knowledge [get]
func (h *KnowledgeHandler) Search(c echo.Context) error {
	if _, err := ctxUID(c); err != nil {
		return err
	}
	articles, err := h.knowledge.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}
