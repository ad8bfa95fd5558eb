package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// PostRepository persists news-feed posts.
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) error
	// List returns up to limit posts ordered by creation time descending.
	List(ctx context.Context, limit int64) ([]*domain.Post, error)
	// Like atomically increments the like counter.
	Like(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// DeleteByAuthor removes all posts of a deleted user.
	DeleteByAuthor(ctx context.Context, authorID string) error
}
