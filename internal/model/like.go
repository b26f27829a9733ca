package model

import "time"

// Like is a (user, video) pair. At most one exists per pair; liking an
// already-liked video returns the existing record unchanged.
type Like struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	VideoID   int64     `db:"video_id" json:"video_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LikeResponse is returned from like/unlike endpoints with the current
// count so clients can update without a refetch.
type LikeResponse struct {
	Message   string `json:"message"`
	LikeCount int    `json:"like_count"`
}
