package model

import (
	"errors"
	"time"
)

// Comment represents a comment on a video.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	VideoID   int64     `db:"video_id" json:"video_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CommentWithUser is a comment joined with its author.
// LikeCount is carried for the client but no operation ever increments
// it; comment liking is not implemented, so it is always 0.
type CommentWithUser struct {
	Comment
	User      User `json:"user"`
	LikeCount int  `json:"like_count"`
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Comment errors
var (
	ErrCommentContentRequired = errors.New("comment content is required")
)
