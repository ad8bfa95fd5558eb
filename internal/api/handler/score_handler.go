package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/infrastructure/queue"
)

// ScoreEnqueuer accepts awards for asynchronous processing.
type ScoreEnqueuer interface {
	Enqueue(award queue.ScoreAward)
}

type ScoreHandler struct {
	dispatcher ScoreEnqueuer
}

func NewScoreHandler(dispatcher ScoreEnqueuer) *ScoreHandler {
	return &ScoreHandler{dispatcher: dispatcher}
}

type scoreEventRequest struct {
	Event string `json:"event" validate:"required"`
}

// Report queues a completed action for point crediting. The event must be
// in the server-side catalog; the caller never supplies a delta.
//
// @Summary      Report a score event
// @Tags         scores
// @Accept       json
// @Param        body  body  scoreEventRequest  true  "Event name"
// @Success      202
// @Failure      400  {object}  map[string]string
// @Router       /score/events [post]
func (h *ScoreHandler) Report(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req scoreEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event := domain.ScoreEvent(req.Event)
	if _, err := domain.PointsFor(event); err != nil {
		return err
	}

	h.dispatcher.Enqueue(queue.ScoreAward{UserID: uid, Event: event})
	return c.NoContent(http.StatusAccepted)
}
