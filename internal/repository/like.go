package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"funlife/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like, leaning on the UNIQUE(user_id, video_id)
// constraint to make the insert-if-absent atomic. Two concurrent likes
// for the same pair cannot both insert; the loser reads the winner's row.
func (r *likeRepository) Create(ctx context.Context, userID, videoID int64) (*model.Like, error) {
	insert := `
		INSERT INTO likes (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO NOTHING
		RETURNING id, user_id, video_id, created_at
	`

	var like model.Like
	err := r.db.GetContext(ctx, &like, insert, userID, videoID)
	if err == nil {
		return &like, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to insert like: %w", err)
	}

	// Conflict: the pair already exists, return the stored record unchanged.
	existing := `SELECT id, user_id, video_id, created_at FROM likes WHERE user_id = $1 AND video_id = $2`
	err = r.db.GetContext(ctx, &like, existing, userID, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing like: %w", err)
	}
	return &like, nil
}

// Delete removes the like if present. Zero rows affected means the user
// never liked the video, which is a no-op rather than an error.
func (r *likeRepository) Delete(ctx context.Context, userID, videoID int64) error {
	query := `DELETE FROM likes WHERE user_id = $1 AND video_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, videoID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, videoID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND video_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, videoID)
	if err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}
	return exists, nil
}

func (r *likeRepository) CountByVideo(ctx context.Context, videoID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM likes WHERE video_id = $1`, videoID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// CountByVideos returns like counts for a batch of videos in one query.
func (r *likeRepository) CountByVideos(ctx context.Context, videoIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int, len(videoIDs))
	for _, id := range videoIDs {
		result[id] = 0
	}
	if len(videoIDs) == 0 {
		return result, nil
	}

	query := `SELECT video_id, COUNT(*) AS count FROM likes WHERE video_id = ANY($1) GROUP BY video_id`
	rows := []struct {
		VideoID int64 `db:"video_id"`
		Count   int   `db:"count"`
	}{}
	err := r.db.SelectContext(ctx, &rows, query, pq.Array(videoIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to count likes by video: %w", err)
	}

	for _, row := range rows {
		result[row.VideoID] = row.Count
	}
	return result, nil
}

// CheckLiked reports which of the given videos the user has liked.
// Single batch query with ANY($2) to avoid N+1 when enriching a feed page.
func (r *likeRepository) CheckLiked(ctx context.Context, userID int64, videoIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(videoIDs))
	for _, id := range videoIDs {
		result[id] = false
	}
	if len(videoIDs) == 0 {
		return result, nil
	}

	query := `SELECT video_id FROM likes WHERE user_id = $1 AND video_id = ANY($2)`
	var likedIDs []int64
	err := r.db.SelectContext(ctx, &likedIDs, query, userID, pq.Array(videoIDs))
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check likes: %w", err)
	}

	for _, id := range likedIDs {
		result[id] = true
	}
	return result, nil
}
