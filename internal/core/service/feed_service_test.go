package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

func TestFeedCreatePost_AwardsAuthor(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u1", Name: "Anna"})
	posts := newStubPostRepo()
	svc := NewFeedService(posts, NewScoreService(users, zerolog.Nop()), zerolog.Nop())

	post, err := svc.CreatePost(context.Background(), "u1", "  Hallo Team!  ", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Content != "Hallo Team!" {
		t.Errorf("content = %q, want trimmed", post.Content)
	}
	if got := users.get("u1").Score; got != 5 {
		t.Errorf("author score = %d, want 5", got)
	}
}

func TestFeedCreatePost_AwardFailureIsNotFatal(t *testing.T) {
	users := newStubUserRepo() // author profile missing, award will fail
	posts := newStubPostRepo()
	svc := NewFeedService(posts, NewScoreService(users, zerolog.Nop()), zerolog.Nop())

	if _, err := svc.CreatePost(context.Background(), "ghost", "Hallo", ""); err != nil {
		t.Fatalf("award failure must not fail the post, got %v", err)
	}
	if len(posts.posts) != 1 {
		t.Error("post not persisted")
	}
}

func TestFeedCreatePost_Validation(t *testing.T) {
	svc := NewFeedService(newStubPostRepo(), NewScoreService(newStubUserRepo(), zerolog.Nop()), zerolog.Nop())

	if _, err := svc.CreatePost(context.Background(), "u1", "   ", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestFeedLikeAndDelete(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u1"})
	posts := newStubPostRepo()
	svc := NewFeedService(posts, NewScoreService(users, zerolog.Nop()), zerolog.Nop())

	post, _ := svc.CreatePost(context.Background(), "u1", "Hallo", "")
	if err := svc.Like(context.Background(), post.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if got := posts.posts[post.ID].Likes; got != 1 {
		t.Errorf("likes = %d, want 1", got)
	}

	if err := svc.Delete(context.Background(), post.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Like(context.Background(), post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound after delete", err)
	}
}
