package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"funlife/internal/model"
)

type videoRepository struct {
	db *sqlx.DB
}

func NewVideoRepository(db *sqlx.DB) VideoRepository {
	return &videoRepository{db: db}
}

const videoColumns = `id, user_id, video_url, thumbnail_url, caption, tags, created_at, views, duration`

// Create inserts a new video. The database assigns id and created_at;
// views always starts at 0.
func (r *videoRepository) Create(ctx context.Context, v *model.Video) error {
	query := `
		INSERT INTO videos (user_id, video_url, thumbnail_url, caption, tags, duration)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, views
	`

	err := r.db.QueryRowxContext(ctx, query,
		v.UserID,
		v.VideoURL,
		v.ThumbnailURL,
		v.Caption,
		pq.Array([]string(v.Tags)),
		v.Duration,
	).Scan(&v.ID, &v.CreatedAt, &v.Views)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	var v model.Video
	err := r.db.GetContext(ctx, &v, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	return &v, nil
}

// GetFeed pages through all videos newest first. The id tie-break keeps
// pagination deterministic when two videos share a created_at.
func (r *videoRepository) GetFeed(ctx context.Context, limit, offset int) ([]model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	videos := []model.Video{}
	err := r.db.SelectContext(ctx, &videos, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed videos: %w", err)
	}

	return videos, nil
}

func (r *videoRepository) GetByUser(ctx context.Context, userID int64) ([]model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	videos := []model.Video{}
	err := r.db.SelectContext(ctx, &videos, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user videos: %w", err)
	}

	return videos, nil
}

// Search matches caption or any tag case-insensitively. Empty query
// returns an empty slice, never the full table.
func (r *videoRepository) Search(ctx context.Context, query string) ([]model.Video, error) {
	if query == "" {
		return []model.Video{}, nil
	}

	searchQuery := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE caption ILIKE $1
		   OR EXISTS (SELECT 1 FROM unnest(tags) AS t WHERE t ILIKE $1)
		ORDER BY created_at DESC, id DESC
	`

	videos := []model.Video{}
	err := r.db.SelectContext(ctx, &videos, searchQuery, escapeLikePattern(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}

	return videos, nil
}

// IncrementViews bumps the counter atomically. A missing video affects
// zero rows, which is deliberately not an error.
func (r *videoRepository) IncrementViews(ctx context.Context, id int64) error {
	query := `UPDATE videos SET views = views + 1 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

func (r *videoRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM videos WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count user videos: %w", err)
	}
	return count, nil
}

func (r *videoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check video existence: %w", err)
	}
	return exists, nil
}
