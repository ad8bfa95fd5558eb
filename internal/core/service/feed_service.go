package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

const feedPageSize = 20

// FeedService manages news-feed posts.
type FeedService struct {
	posts  ports.PostRepository
	scores ports.ScoreService
	log    zerolog.Logger
}

func NewFeedService(posts ports.PostRepository, scores ports.ScoreService, log zerolog.Logger) *FeedService {
	return &FeedService{posts: posts, scores: scores, log: log}
}

// CreatePost publishes a post and credits the author.
func (s *FeedService) CreatePost(ctx context.Context, authorID, content, image string) (*domain.Post, error) {
	content = strings.TrimSpace(content)
	if authorID == "" || content == "" {
		return nil, domain.ErrValidation
	}

	post := &domain.Post{
		AuthorID:  authorID,
		Content:   content,
		Image:     image,
		Likes:     0,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, err
	}

	if _, err := s.scores.Award(ctx, authorID, domain.EventPostCreated); err != nil {
		s.log.Warn().Err(err).Str("user", authorID).Msg("post award failed")
	}
	return post, nil
}

// Feed returns the newest posts.
func (s *FeedService) Feed(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx, feedPageSize)
}

// Like increments the post's like counter atomically.
func (s *FeedService) Like(ctx context.Context, postID string) error {
	return s.posts.Like(ctx, postID)
}

// Delete removes a post. The route is admin-gated.
func (s *FeedService) Delete(ctx context.Context, postID string) error {
	return s.posts.Delete(ctx, postID)
}
