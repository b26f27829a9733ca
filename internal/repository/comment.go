package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"funlife/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (user_id, video_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, c.UserID, c.VideoID, c.Content).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// GetByVideo returns a video's comments, newest first.
func (r *commentRepository) GetByVideo(ctx context.Context, videoID int64) ([]model.Comment, error) {
	query := `
		SELECT id, user_id, video_id, content, created_at
		FROM comments
		WHERE video_id = $1
		ORDER BY created_at DESC, id DESC
	`

	comments := []model.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}

// CountByVideos returns comment counts for a batch of videos in one query.
func (r *commentRepository) CountByVideos(ctx context.Context, videoIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int, len(videoIDs))
	for _, id := range videoIDs {
		result[id] = 0
	}
	if len(videoIDs) == 0 {
		return result, nil
	}

	query := `SELECT video_id, COUNT(*) AS count FROM comments WHERE video_id = ANY($1) GROUP BY video_id`
	rows := []struct {
		VideoID int64 `db:"video_id"`
		Count   int   `db:"count"`
	}{}
	err := r.db.SelectContext(ctx, &rows, query, pq.Array(videoIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to count comments by video: %w", err)
	}

	for _, row := range rows {
		result[row.VideoID] = row.Count
	}
	return result, nil
}
