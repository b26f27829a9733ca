package model

import (
	"errors"
	"time"
)

// Follow is an ordered (follower, followed) pair. At most one exists per
// pair; re-following returns the existing record unchanged.
type Follow struct {
	ID         int64     `db:"id" json:"id"`
	FollowerID int64     `db:"follower_id" json:"follower_id"`
	FollowedID int64     `db:"followed_id" json:"followed_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

var (
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
