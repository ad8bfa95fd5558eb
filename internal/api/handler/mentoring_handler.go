package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

type MentoringHandler struct {
	mentoring ports.MentoringService
}

func NewMentoringHandler(mentoring ports.MentoringService) *MentoringHandler {
	return &MentoringHandler{mentoring: mentoring}
}

type assignMentorRequest struct {
	MenteeID string `json:"mentee_id" validate:"required"`
}

type createTaskRequest struct {
	MenteeID    string `json:"mentee_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// AssignMentor registers the caller as a mentee's mentor.
//
// @Summary      Assign a mentor
// @Tags         mentoring
// @Accept       json
// @Param        body  body  assignMentorRequest  true  "Mentee"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /mentoring/mentees [post]
func (h *MentoringHandler) AssignMentor(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req assignMentorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.mentoring.AssignMentor(c.Request().Context(), uid, req.MenteeID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateTask assigns a task to one of the caller's mentees.
//
// @Summary      Create a mentoring task
// @Tags         mentoring
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.MentoringTask
// @Router       /mentoring/tasks [post]
func (h *MentoringHandler) CreateTask(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.mentoring.CreateTask(c.Request().Context(), uid, req.MenteeID, req.Title, req.Description, req.DueDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// CompleteTask marks one of the caller's tasks done.
//
// @Summary      Complete a mentoring task
// @Tags         mentoring
// @Param        id  path  string  true  "Task ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /mentoring/tasks/{id}/complete [post]
func (h *MentoringHandler) CompleteTask(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	if err := h.mentoring.CompleteTask(c.Request().Context(), uid, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Tasks lists the caller's tasks, as mentee by default or as mentor with
// ?as=mentor.
//
// @Summary      List mentoring tasks
// @Tags         mentoring
// @Produce      json
// @Param        as  query  string  false  "mentor or mentee"
// @Success      200  {array}  domain.MentoringTask
// @Router       /mentoring/tasks [get]
func (h *MentoringHandler) Tasks(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	asMentor := c.QueryParam("as") == "mentor"
	tasks, err := h.mentoring.TasksFor(c.Request().Context(), uid, asMentor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}
