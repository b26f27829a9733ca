package service_test

import (
	"context"
	"errors"
	"testing"

	"funlife/internal/model"
)

func TestCreateComment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	video := env.seedVideo(t, alice.ID, "clip")

	comment, err := env.comments.Create(ctx, bob.ID, video.ID, "nice one")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comment.Content != "nice one" {
		t.Errorf("content: got %q, want %q", comment.Content, "nice one")
	}
	if comment.User.Username != "bob" {
		t.Errorf("author: got %q, want %q", comment.User.Username, "bob")
	}
	if comment.LikeCount != 0 {
		t.Errorf("like count: got %d, want 0", comment.LikeCount)
	}
}

func TestCreateCommentValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	video := env.seedVideo(t, alice.ID, "clip")

	_, err := env.comments.Create(ctx, alice.ID, video.ID, "   ")
	if !errors.Is(err, model.ErrCommentContentRequired) {
		t.Errorf("blank content: got %v, want ErrCommentContentRequired", err)
	}

	_, err = env.comments.Create(ctx, alice.ID, 999, "hello")
	if !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("unknown video: got %v, want ErrVideoNotFound", err)
	}
}

func TestListCommentsNewestFirst(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	video := env.seedVideo(t, alice.ID, "clip")

	for _, content := range []string{"first", "second", "third"} {
		if _, err := env.comments.Create(ctx, bob.ID, video.ID, content); err != nil {
			t.Fatalf("Create %q: %v", content, err)
		}
	}

	comments, err := env.comments.GetByVideo(ctx, video.ID)
	if err != nil {
		t.Fatalf("GetByVideo: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("comment count: got %d, want 3", len(comments))
	}
	if comments[0].Content != "third" {
		t.Errorf("newest first: got %q, want %q", comments[0].Content, "third")
	}

	// Comment count shows up on the enriched video.
	enriched, err := env.videos.GetWithDetails(ctx, video.ID, nil)
	if err != nil {
		t.Fatalf("GetWithDetails: %v", err)
	}
	if enriched.CommentCount != 3 {
		t.Errorf("comment count on video: got %d, want 3", enriched.CommentCount)
	}
}
