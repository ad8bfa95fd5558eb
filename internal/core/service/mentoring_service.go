package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

// MentoringService pairs mentors with mentees and tracks tasks.
type MentoringService struct {
	tasks ports.MentoringRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewMentoringService(tasks ports.MentoringRepository, users ports.UserRepository, log zerolog.Logger) *MentoringService {
	return &MentoringService{tasks: tasks, users: users, log: log}
}

// AssignMentor sets the mentee's mentor and bumps the mentor's counter,
// which feeds the mentor badge on the mentor's next score recompute.
func (s *MentoringService) AssignMentor(ctx context.Context, mentorID, menteeID string) error {
	if mentorID == "" || menteeID == "" || mentorID == menteeID {
		return domain.ErrValidation
	}
	if err := s.users.SetMentor(ctx, menteeID, mentorID); err != nil {
		return err
	}
	if err := s.users.IncrementMentees(ctx, mentorID); err != nil {
		s.log.Warn().Err(err).Str("mentor", mentorID).Msg("mentee counter increment failed")
	}
	return nil
}

// CreateTask files a task from mentor to mentee.
func (s *MentoringService) CreateTask(ctx context.Context, mentorID, menteeID, title, description, dueDate string) (*domain.MentoringTask, error) {
	title = strings.TrimSpace(title)
	if mentorID == "" || menteeID == "" || title == "" {
		return nil, domain.ErrValidation
	}

	task := &domain.MentoringTask{
		MentorID:    mentorID,
		MenteeID:    menteeID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteTask marks a task done (one-way). Only the task's mentor or
// mentee may complete it; anyone else sees not found.
func (s *MentoringService) CompleteTask(ctx context.Context, actorID, taskID string) error {
	if actorID == "" || taskID == "" {
		return domain.ErrValidation
	}
	return s.tasks.Complete(ctx, taskID, actorID, time.Now().UTC())
}

// TasksFor returns a user's tasks, as mentee by default or as mentor.
func (s *MentoringService) TasksFor(ctx context.Context, userID string, asMentor bool) ([]*domain.MentoringTask, error) {
	if asMentor {
		return s.tasks.ListByMentor(ctx, userID)
	}
	return s.tasks.ListByMentee(ctx, userID)
}
