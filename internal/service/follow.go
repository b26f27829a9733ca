package service

import (
	"context"

	"funlife/internal/model"
	"funlife/internal/repository"
)

type FollowService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

func NewFollowService(
	follows repository.FollowRepository,
	users repository.UserRepository,
) *FollowService {
	return &FollowService{
		follows: follows,
		users:   users,
	}
}

// Follow records a follow edge. Self-follows are rejected; re-following
// is a successful no-op that returns the existing record.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID int64) (*model.Follow, error) {
	if followerID == followedID {
		return nil, model.ErrCannotFollowSelf
	}

	if _, err := s.users.GetByID(ctx, followedID); err != nil {
		return nil, err
	}

	return s.follows.Create(ctx, followerID, followedID)
}

// Unfollow removes the edge if present; absence is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	return s.follows.Delete(ctx, followerID, followedID)
}

// IsFollowing reports whether follower follows followed.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return s.follows.Exists(ctx, followerID, followedID)
}
