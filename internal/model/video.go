package model

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

// Video represents an uploaded short clip.
type Video struct {
	ID           int64          `db:"id" json:"id"`
	UserID       int64          `db:"user_id" json:"user_id"`
	VideoURL     string         `db:"video_url" json:"video_url"`
	ThumbnailURL *string        `db:"thumbnail_url" json:"thumbnail_url"`
	Caption      *string        `db:"caption" json:"caption"`
	Tags         pq.StringArray `db:"tags" json:"tags"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	Views        int            `db:"views" json:"views"`
	Duration     int            `db:"duration" json:"duration"` // seconds
}

// VideoWithUser is a video enriched with its author and aggregate counts.
// Counts are recomputed from the likes/comments tables on every read, so
// they can never go stale. IsLiked is only set when a viewer is known.
type VideoWithUser struct {
	Video
	User         User  `json:"user"`
	LikeCount    int   `json:"like_count"`
	CommentCount int   `json:"comment_count"`
	IsLiked      *bool `json:"is_liked,omitempty"`
}

// CreateVideoRequest carries the already-resolved inputs for video
// creation: the file has been persisted by the upload sink and tags have
// been extracted by the boundary layer.
type CreateVideoRequest struct {
	VideoURL     string
	ThumbnailURL *string
	Caption      *string
	Tags         []string
	Duration     int
}

// Video constraints
const (
	MaxVideoDuration  = 60               // seconds
	MaxVideoSizeBytes = 50 * 1024 * 1024 // 50MB upload cap
)

// Video errors
var (
	ErrVideoNotFound   = errors.New("video not found")
	ErrInvalidDuration = errors.New("videos must be 60 seconds or less")
	ErrNoVideoFile     = errors.New("no video file uploaded")
	ErrNotVideoFile    = errors.New("only video files are allowed")
	ErrVideoTooLarge   = errors.New("video file too large")
)
