package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

type ChatHandler struct {
	chat ports.ChatService
}

func NewChatHandler(chat ports.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// Conversation returns the ordered message history with a peer. Pass the
// assistant peer id to get the seeded assistant thread.
//
// @Summary      Fetch a conversation
// @Tags         chat
// @Produce      json
// @Param        peer   path   string  true   "Peer user ID"
// @Param        limit  query  int     false  "Maximum messages"
// @Success      200  {array}  domain.Message
// @Failure      401  {object}  map[string]string
// @Router       /chat/{peer} [get]
func (h *ChatHandler) Conversation(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		limit, _ = strconv.ParseInt(raw, 10, 64)
	}

	msgs, err := h.chat.Conversation(c.Request().Context(), uid, c.Param("peer"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// Send appends a message to the conversation with a peer and returns the
// appended turns. For the assistant peer the reply is included.
//
// @Summary      Send a message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        peer  path  string              true  "Peer user ID"
// @Param        body  body  sendMessageRequest  true  "Message text"
// @Success      201  {array}  domain.Message
// @Failure      400  {object}  map[string]string
// @Router       /chat/{peer} [post]
func (h *ChatHandler) Send(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msgs, err := h.chat.Send(c.Request().Context(), uid, c.Param("peer"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msgs)
}
