package ports

import (
	"context"
	"time"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// MentoringRepository persists mentoring tasks.
type MentoringRepository interface {
	Insert(ctx context.Context, task *domain.MentoringTask) error
	// Complete marks the task done, scoped to actorID being the task's
	// mentor or mentee; other callers get not found.
	Complete(ctx context.Context, id, actorID string, at time.Time) error
	ListByMentee(ctx context.Context, menteeID string) ([]*domain.MentoringTask, error)
	ListByMentor(ctx context.Context, mentorID string) ([]*domain.MentoringTask, error)
}

// KnowledgeRepository persists knowledge-base articles.
type KnowledgeRepository interface {
	Insert(ctx context.Context, article *domain.KnowledgeArticle) error
	// FindByID also counts the read as a view (atomic increment).
	FindByID(ctx context.Context, id string) (*domain.KnowledgeArticle, error)
	ListAll(ctx context.Context) ([]*domain.KnowledgeArticle, error)
}
