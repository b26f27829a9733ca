package service_test

import (
	"context"
	"fmt"
	"testing"

	"funlife/internal/model"
	"funlife/internal/repository"
	"funlife/internal/service"
)

// testEnv wires every service against a single in-memory store so tests
// exercise the same repository contracts the Postgres backend implements.
type testEnv struct {
	store    *repository.MemStore
	users    *service.UserService
	videos   *service.VideoService
	comments *service.CommentService
	follows  *service.FollowService
}

func newTestEnv() *testEnv {
	store := repository.NewMemStore()
	return &testEnv{
		store:    store,
		users:    service.NewUserService(store.Users(), store.Videos(), store.Follows()),
		videos:   service.NewVideoService(store.Videos(), store.Users(), store.Likes(), store.Comments()),
		comments: service.NewCommentService(store.Comments(), store.Users(), store.Videos()),
		follows:  service.NewFollowService(store.Follows(), store.Users()),
	}
}

func (e *testEnv) seedUser(t *testing.T, username string) *model.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), &model.RegisterRequest{
		Username: username,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	return user
}

func (e *testEnv) seedVideo(t *testing.T, ownerID int64, caption string) *model.VideoWithUser {
	t.Helper()
	video, err := e.videos.Create(context.Background(), ownerID, model.CreateVideoRequest{
		VideoURL: fmt.Sprintf("/uploads/videos/%s.mp4", caption),
		Caption:  &caption,
		Duration: 30,
	})
	if err != nil {
		t.Fatalf("seed video %q: %v", caption, err)
	}
	return video
}
