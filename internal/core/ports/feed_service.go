package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// FeedService manages the company news feed.
type FeedService interface {
	// CreatePost publishes a post and credits the author with points.
	CreatePost(ctx context.Context, authorID, content, image string) (*domain.Post, error)
	Feed(ctx context.Context) ([]*domain.Post, error)
	Like(ctx context.Context, postID string) error
	Delete(ctx context.Context, postID string) error
}
