package service_test

import (
	"context"
	"errors"
	"testing"

	"funlife/internal/model"
)

func TestCreateVideoDurationLimit(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")

	_, err := env.videos.Create(ctx, alice.ID, model.CreateVideoRequest{
		VideoURL: "/uploads/videos/too-long.mp4",
		Duration: 61,
	})
	if !errors.Is(err, model.ErrInvalidDuration) {
		t.Errorf("61s video: got %v, want ErrInvalidDuration", err)
	}

	_, err = env.videos.Create(ctx, alice.ID, model.CreateVideoRequest{
		VideoURL: "/uploads/videos/zero.mp4",
		Duration: 0,
	})
	if !errors.Is(err, model.ErrInvalidDuration) {
		t.Errorf("0s video: got %v, want ErrInvalidDuration", err)
	}

	video, err := env.videos.Create(ctx, alice.ID, model.CreateVideoRequest{
		VideoURL: "/uploads/videos/max.mp4",
		Duration: 60,
	})
	if err != nil {
		t.Fatalf("60s video: %v", err)
	}
	if video.Duration != 60 {
		t.Errorf("duration: got %d, want 60", video.Duration)
	}
	if video.User.ID != alice.ID {
		t.Errorf("author: got %d, want %d", video.User.ID, alice.ID)
	}
	if video.Views != 0 {
		t.Errorf("fresh video views: got %d, want 0", video.Views)
	}
}

func TestLikeIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	video := env.seedVideo(t, alice.ID, "clip")

	count, err := env.videos.Like(ctx, bob.ID, video.ID)
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	if count != 1 {
		t.Errorf("like count after first like: got %d, want 1", count)
	}

	// Liking again succeeds and leaves a single record.
	count, err = env.videos.Like(ctx, bob.ID, video.ID)
	if err != nil {
		t.Fatalf("second Like: %v", err)
	}
	if count != 1 {
		t.Errorf("like count after duplicate like: got %d, want 1", count)
	}
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	video := env.seedVideo(t, alice.ID, "clip")

	if _, err := env.videos.Like(ctx, bob.ID, video.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}

	count, err := env.videos.Unlike(ctx, bob.ID, video.ID)
	if err != nil {
		t.Fatalf("Unlike: %v", err)
	}
	if count != 0 {
		t.Errorf("like count after unlike: got %d, want 0", count)
	}

	// Unliking a never-liked video is a successful no-op.
	count, err = env.videos.Unlike(ctx, alice.ID, video.ID)
	if err != nil {
		t.Fatalf("no-op Unlike: %v", err)
	}
	if count != 0 {
		t.Errorf("like count after no-op unlike: got %d, want 0", count)
	}
}

func TestLikeUnknownVideo(t *testing.T) {
	env := newTestEnv()
	bob := env.seedUser(t, "bob")

	_, err := env.videos.Like(context.Background(), bob.ID, 999)
	if !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("like unknown video: got %v, want ErrVideoNotFound", err)
	}
}

func TestFeedOrderAndPagination(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")

	captions := []string{"first", "second", "third", "fourth", "fifth"}
	for _, c := range captions {
		env.seedVideo(t, alice.ID, c)
	}

	page1, err := env.videos.GetFeed(ctx, 3, 0, nil)
	if err != nil {
		t.Fatalf("GetFeed page 1: %v", err)
	}
	if len(page1) != 3 {
		t.Fatalf("page 1 size: got %d, want 3", len(page1))
	}
	if *page1[0].Caption != "fifth" {
		t.Errorf("newest first: got %q, want %q", *page1[0].Caption, "fifth")
	}

	page2, err := env.videos.GetFeed(ctx, 3, 3, nil)
	if err != nil {
		t.Fatalf("GetFeed page 2: %v", err)
	}
	if len(page2) != 2 {
		t.Fatalf("page 2 size: got %d, want 2", len(page2))
	}

	// No overlap between consecutive pages.
	seen := make(map[int64]bool)
	for _, v := range page1 {
		seen[v.ID] = true
	}
	for _, v := range page2 {
		if seen[v.ID] {
			t.Errorf("video %d appears on both pages", v.ID)
		}
	}

	// Offset past the end yields an empty page, not an error.
	page3, err := env.videos.GetFeed(ctx, 3, 100, nil)
	if err != nil {
		t.Fatalf("GetFeed past end: %v", err)
	}
	if len(page3) != 0 {
		t.Errorf("page past end: got %d videos, want 0", len(page3))
	}
}

func TestFeedViewerLikeFlag(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	liked := env.seedVideo(t, alice.ID, "liked")
	env.seedVideo(t, alice.ID, "not liked")

	if _, err := env.videos.Like(ctx, bob.ID, liked.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}

	// Anonymous: counts present, is_liked absent.
	feed, err := env.videos.GetFeed(ctx, 10, 0, nil)
	if err != nil {
		t.Fatalf("GetFeed anonymous: %v", err)
	}
	for _, v := range feed {
		if v.IsLiked != nil {
			t.Errorf("video %d: is_liked should be unset for anonymous viewers", v.ID)
		}
	}

	// Bob sees his like reflected per video.
	feed, err = env.videos.GetFeed(ctx, 10, 0, &bob.ID)
	if err != nil {
		t.Fatalf("GetFeed as bob: %v", err)
	}
	for _, v := range feed {
		if v.IsLiked == nil {
			t.Fatalf("video %d: is_liked should be set for a known viewer", v.ID)
		}
		want := v.ID == liked.ID
		if *v.IsLiked != want {
			t.Errorf("video %d: is_liked got %v, want %v", v.ID, *v.IsLiked, want)
		}
		if want && v.LikeCount != 1 {
			t.Errorf("video %d: like count got %d, want 1", v.ID, v.LikeCount)
		}
	}
}

func TestVideoSearch(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")

	caption := "sunset at the beach"
	if _, err := env.videos.Create(ctx, alice.ID, model.CreateVideoRequest{
		VideoURL: "/uploads/videos/a.mp4",
		Caption:  &caption,
		Tags:     []string{"#travel", "#summer"},
		Duration: 15,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	env.seedVideo(t, alice.ID, "morning coffee")

	byCaption, err := env.videos.Search(ctx, "beach", nil)
	if err != nil {
		t.Fatalf("Search by caption: %v", err)
	}
	if len(byCaption) != 1 {
		t.Errorf("search 'beach': got %d videos, want 1", len(byCaption))
	}

	byTag, err := env.videos.Search(ctx, "travel", nil)
	if err != nil {
		t.Fatalf("Search by tag: %v", err)
	}
	if len(byTag) != 1 {
		t.Errorf("search 'travel': got %d videos, want 1", len(byTag))
	}

	empty, err := env.videos.Search(ctx, "", nil)
	if err != nil {
		t.Fatalf("Search empty: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty query: got %d videos, want 0", len(empty))
	}
}

func TestIncrementViews(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	video := env.seedVideo(t, alice.ID, "clip")

	if err := env.videos.IncrementViews(ctx, video.ID); err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}
	if err := env.videos.IncrementViews(ctx, video.ID); err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}

	got, err := env.videos.GetWithDetails(ctx, video.ID, nil)
	if err != nil {
		t.Fatalf("GetWithDetails: %v", err)
	}
	if got.Views != 2 {
		t.Errorf("views: got %d, want 2", got.Views)
	}

	// Missing videos are a silent no-op.
	if err := env.videos.IncrementViews(ctx, 999); err != nil {
		t.Errorf("IncrementViews on missing video: got %v, want nil", err)
	}
}

func TestGetWithDetailsUnknownVideo(t *testing.T) {
	env := newTestEnv()

	_, err := env.videos.GetWithDetails(context.Background(), 999, nil)
	if !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("unknown video: got %v, want ErrVideoNotFound", err)
	}
}
