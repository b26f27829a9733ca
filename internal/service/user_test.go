package service_test

import (
	"context"
	"errors"
	"testing"

	"funlife/internal/model"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	user, err := env.users.Register(ctx, &model.RegisterRequest{
		Username: "alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected registered user to get an ID")
	}
	if user.PasswordHashed == "password123" {
		t.Error("password stored in plain text")
	}

	loggedIn, err := env.users.Login(ctx, &model.LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in as user %d, want %d", loggedIn.ID, user.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")

	_, err := env.users.Login(context.Background(), &model.LoginRequest{
		Username: "alice",
		Password: "not-the-password",
	})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}

	// Unknown usernames produce the same error as bad passwords.
	_, err = env.users.Login(context.Background(), &model.LoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "alice")

	_, err := env.users.Register(context.Background(), &model.RegisterRequest{
		Username: "Alice",
		Password: "password123",
	})
	if !errors.Is(err, model.ErrUsernameExists) {
		t.Errorf("duplicate username (case-insensitive): got %v, want ErrUsernameExists", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.users.Register(ctx, &model.RegisterRequest{Username: "  ", Password: "password123"})
	if !errors.Is(err, model.ErrUsernameRequired) {
		t.Errorf("blank username: got %v, want ErrUsernameRequired", err)
	}

	_, err = env.users.Register(ctx, &model.RegisterRequest{Username: "alice", Password: ""})
	if !errors.Is(err, model.ErrPasswordRequired) {
		t.Errorf("blank password: got %v, want ErrPasswordRequired", err)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	bio := "original bio"
	user, err := env.users.Register(ctx, &model.RegisterRequest{
		Username: "alice",
		Password: "password123",
		Bio:      &bio,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	displayName := "Alice A."
	updated, err := env.users.Update(ctx, user.ID, model.UpdateUserRequest{
		DisplayName: &displayName,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.DisplayName == nil || *updated.DisplayName != displayName {
		t.Errorf("display name not updated: got %v", updated.DisplayName)
	}
	if updated.Bio == nil || *updated.Bio != bio {
		t.Errorf("bio should be untouched: got %v", updated.Bio)
	}
	if updated.Username != "alice" {
		t.Errorf("username should be untouched: got %q", updated.Username)
	}
}

func TestUpdateUsernameCaseVariantTaken(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")

	// Uniqueness ignores case, so bob cannot become "ALICE".
	taken := "ALICE"
	_, err := env.users.Update(ctx, bob.ID, model.UpdateUserRequest{Username: &taken})
	if !errors.Is(err, model.ErrUsernameExists) {
		t.Errorf("rename to case-variant of taken username: got %v, want ErrUsernameExists", err)
	}

	// The case-variant of his own name is fine.
	own := "BOB"
	updated, err := env.users.Update(ctx, bob.ID, model.UpdateUserRequest{Username: &own})
	if err != nil {
		t.Fatalf("rename to own case-variant: %v", err)
	}
	if updated.Username != "BOB" {
		t.Errorf("username: got %q, want %q", updated.Username, "BOB")
	}
}

func TestGetWithStats(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	charlie := env.seedUser(t, "charlie")

	env.seedVideo(t, alice.ID, "first")
	env.seedVideo(t, alice.ID, "second")

	if _, err := env.follows.Follow(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if _, err := env.follows.Follow(ctx, charlie.ID, alice.ID); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if _, err := env.follows.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Follow: %v", err)
	}

	// Anonymous view: counts but no is_following.
	stats, err := env.users.GetWithStats(ctx, alice.ID, nil)
	if err != nil {
		t.Fatalf("GetWithStats: %v", err)
	}
	if stats.VideoCount != 2 {
		t.Errorf("video count: got %d, want 2", stats.VideoCount)
	}
	if stats.FollowerCount != 2 {
		t.Errorf("follower count: got %d, want 2", stats.FollowerCount)
	}
	if stats.FollowingCount != 1 {
		t.Errorf("following count: got %d, want 1", stats.FollowingCount)
	}
	if stats.IsFollowing != nil {
		t.Error("is_following should be unset for anonymous viewers")
	}

	// Bob's view: he follows alice.
	stats, err = env.users.GetWithStats(ctx, alice.ID, &bob.ID)
	if err != nil {
		t.Fatalf("GetWithStats: %v", err)
	}
	if stats.IsFollowing == nil || !*stats.IsFollowing {
		t.Error("bob follows alice, is_following should be true")
	}

	// Alice's own view: she does not follow herself.
	stats, err = env.users.GetWithStats(ctx, alice.ID, &alice.ID)
	if err != nil {
		t.Fatalf("GetWithStats: %v", err)
	}
	if stats.IsFollowing == nil || *stats.IsFollowing {
		t.Error("alice does not follow herself, is_following should be false")
	}
}

func TestGetWithStatsUnknownUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.users.GetWithStats(context.Background(), 999, nil)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("unknown user: got %v, want ErrUserNotFound", err)
	}
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.seedUser(t, "alice")
	env.seedUser(t, "alicia")
	env.seedUser(t, "bob")

	results, err := env.users.Search(ctx, "ali")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("search 'ali': got %d users, want 2", len(results))
	}

	// Empty query returns nothing, never the whole table.
	results, err = env.users.Search(ctx, "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("empty query: got %d users, want 0", len(results))
	}
}

func TestSearchUsersLiteralWildcards(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.seedUser(t, "alice")
	env.seedUser(t, "ali_ce")

	// "_" and "%" in the query are plain characters, not pattern
	// metacharacters.
	results, err := env.users.Search(ctx, "i_c")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Username != "ali_ce" {
		t.Errorf("search 'i_c': got %+v, want only ali_ce", results)
	}

	results, err = env.users.Search(ctx, "%")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("search '%%': got %d users, want 0", len(results))
	}
}
