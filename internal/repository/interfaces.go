package repository

import (
	"context"
	"strings"

	"funlife/internal/model"
)

// Each repository has two implementations: one backed by Postgres via
// sqlx (production), one backed by in-process maps (tests, local dev).
// Services depend only on these interfaces and receive a concrete
// implementation at construction time.

// likePatternEscaper neutralizes LIKE metacharacters in user-supplied
// search input so "_" and "%" match literally, the same way the
// in-memory substring match treats them.
var likePatternEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern wraps a raw query in %...% with metacharacters escaped.
func escapeLikePattern(query string) string {
	return "%" + likePatternEscaper.Replace(query) + "%"
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByIDs batch-fetches users; absent ids are simply missing from the map.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]model.User, error)
	// GetByUsername is case-insensitive.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Update applies a partial update; nil fields are left untouched.
	Update(ctx context.Context, id int64, updates model.UpdateUserRequest) (*model.User, error)
	// Search matches username OR display name, case-insensitive substring.
	Search(ctx context.Context, query string) ([]model.User, error)
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	// GetFeed returns videos ordered created_at DESC, id DESC with
	// offset/limit pagination.
	GetFeed(ctx context.Context, limit, offset int) ([]model.Video, error)
	// GetByUser returns all of a user's videos, newest first, no limit.
	GetByUser(ctx context.Context, userID int64) ([]model.Video, error)
	// Search matches caption OR any tag, case-insensitive substring.
	Search(ctx context.Context, query string) ([]model.Video, error)
	// IncrementViews is a silent no-op when the video does not exist.
	IncrementViews(ctx context.Context, id int64) error
	CountByUser(ctx context.Context, userID int64) (int, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type LikeRepository interface {
	// Create is an atomic insert-if-absent; when the pair already exists
	// the stored record is returned unchanged.
	Create(ctx context.Context, userID, videoID int64) (*model.Like, error)
	// Delete removes the pair if present; absence is not an error.
	Delete(ctx context.Context, userID, videoID int64) error
	Exists(ctx context.Context, userID, videoID int64) (bool, error)
	CountByVideo(ctx context.Context, videoID int64) (int, error)
	// CountByVideos returns a count per video id; ids with no likes map to 0.
	CountByVideos(ctx context.Context, videoIDs []int64) (map[int64]int, error)
	// CheckLiked reports which of the videos the user has liked.
	CheckLiked(ctx context.Context, userID int64, videoIDs []int64) (map[int64]bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// GetByVideo returns comments newest first.
	GetByVideo(ctx context.Context, videoID int64) ([]model.Comment, error)
	CountByVideos(ctx context.Context, videoIDs []int64) (map[int64]int, error)
}

type FollowRepository interface {
	// Create is an atomic insert-if-absent like LikeRepository.Create.
	Create(ctx context.Context, followerID, followedID int64) (*model.Follow, error)
	Delete(ctx context.Context, followerID, followedID int64) error
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	CountFollowers(ctx context.Context, userID int64) (int, error)
	CountFollowing(ctx context.Context, userID int64) (int, error)
}
