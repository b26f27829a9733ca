package service_test

import (
	"context"
	"errors"
	"testing"

	"funlife/internal/model"
)

func TestFollowSelf(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser(t, "alice")

	_, err := env.follows.Follow(context.Background(), alice.ID, alice.ID)
	if !errors.Is(err, model.ErrCannotFollowSelf) {
		t.Errorf("self-follow: got %v, want ErrCannotFollowSelf", err)
	}
}

func TestFollowUnknownUser(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser(t, "alice")

	_, err := env.follows.Follow(context.Background(), alice.ID, 999)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("follow unknown user: got %v, want ErrUserNotFound", err)
	}
}

func TestFollowIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")

	first, err := env.follows.Follow(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("Follow: %v", err)
	}

	// Following again succeeds and returns the same edge.
	second, err := env.follows.Follow(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("second Follow: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("duplicate follow created a new edge: %d vs %d", second.ID, first.ID)
	}

	stats, err := env.users.GetWithStats(ctx, alice.ID, nil)
	if err != nil {
		t.Fatalf("GetWithStats: %v", err)
	}
	if stats.FollowerCount != 1 {
		t.Errorf("follower count after duplicate follow: got %d, want 1", stats.FollowerCount)
	}
}

func TestUnfollow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")

	if _, err := env.follows.Follow(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if err := env.follows.Unfollow(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}

	following, err := env.follows.IsFollowing(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("IsFollowing: %v", err)
	}
	if following {
		t.Error("bob should no longer follow alice")
	}

	// Unfollowing someone never followed is a successful no-op.
	if err := env.follows.Unfollow(ctx, bob.ID, alice.ID); err != nil {
		t.Errorf("no-op Unfollow: got %v, want nil", err)
	}
}
