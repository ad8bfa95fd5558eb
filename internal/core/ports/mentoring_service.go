package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// MentoringService pairs mentors with mentees and tracks their tasks.
type MentoringService interface {
	AssignMentor(ctx context.Context, mentorID, menteeID string) error
	CreateTask(ctx context.Context, mentorID, menteeID, title, description, dueDate string) (*domain.MentoringTask, error)
	CompleteTask(ctx context.Context, actorID, taskID string) error
	TasksFor(ctx context.Context, userID string, asMentor bool) ([]*domain.MentoringTask, error)
}

// KnowledgeService manages the searchable knowledge base.
type KnowledgeService interface {
	CreateArticle(ctx context.Context, authorID, title, content, category string, tags []string) (*domain.KnowledgeArticle, error)
	// Read returns the article and counts the view.
	Read(ctx context.Context, id string) (*domain.KnowledgeArticle, error)
	Search(ctx context.Context, term string) ([]*domain.KnowledgeArticle, error)
}
