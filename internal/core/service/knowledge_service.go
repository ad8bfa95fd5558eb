package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

// KnowledgeService manages the searchable knowledge base.
type KnowledgeService struct {
	repo ports.KnowledgeRepository
	log  zerolog.Logger
}

func NewKnowledgeService(repo ports.KnowledgeRepository, log zerolog.Logger) *KnowledgeService {
	return &KnowledgeService{repo: repo, log: log}
}

// CreateArticle publishes a new article.
func (s *KnowledgeService) CreateArticle(ctx context.Context, authorID, title, content, category string, tags []string) (*domain.KnowledgeArticle, error) {
	title = strings.TrimSpace(title)
	if authorID == "" || title == "" || content == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	article := &domain.KnowledgeArticle{
		Title:     title,
		Content:   content,
		Category:  category,
		Tags:      tags,
		Views:     0,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Read fetches one article; the repository counts the view.
func (s *KnowledgeService) Read(ctx context.Context, id string) (*domain.KnowledgeArticle, error) {
	return s.repo.FindByID(ctx, id)
}

// Search matches the term against titles and tags, case-insensitively.
func (s *KnowledgeService) Search(ctx context.Context, term string) ([]*domain.KnowledgeArticle, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all, nil
	}

	var matched []*domain.KnowledgeArticle
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Title), term) || tagMatch(a.Tags, term) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func tagMatch(tags []string, term string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}
