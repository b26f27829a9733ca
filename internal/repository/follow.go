package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"funlife/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts a follow with the same conflict-is-success semantics as
// likes: UNIQUE(follower_id, followed_id) makes the insert atomic, and a
// duplicate returns the stored record unchanged.
func (r *followRepository) Create(ctx context.Context, followerID, followedID int64) (*model.Follow, error) {
	insert := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
		RETURNING id, follower_id, followed_id, created_at
	`

	var follow model.Follow
	err := r.db.GetContext(ctx, &follow, insert, followerID, followedID)
	if err == nil {
		return &follow, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to insert follow: %w", err)
	}

	existing := `SELECT id, follower_id, followed_id, created_at FROM follows WHERE follower_id = $1 AND followed_id = $2`
	err = r.db.GetContext(ctx, &follow, existing, followerID, followedID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing follow: %w", err)
	}
	return &follow, nil
}

// Delete removes the follow if present; absence is a no-op.
func (r *followRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return count, nil
}
