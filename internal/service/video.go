package service

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"funlife/internal/model"
	"funlife/internal/repository"
)

const (
	// FeedDefaultLimit is the default number of videos per page
	FeedDefaultLimit = 10

	// FeedMaxLimit is the maximum number of videos per page
	FeedMaxLimit = 50
)

// VideoService handles video creation, the feed/search/profile reads and
// the like toggle. Every read recomputes the aggregates (author,
// like/comment counts, per-viewer like state) from the base tables.
type VideoService struct {
	videos   repository.VideoRepository
	users    repository.UserRepository
	likes    repository.LikeRepository
	comments repository.CommentRepository
}

func NewVideoService(
	videos repository.VideoRepository,
	users repository.UserRepository,
	likes repository.LikeRepository,
	comments repository.CommentRepository,
) *VideoService {
	return &VideoService{
		videos:   videos,
		users:    users,
		likes:    likes,
		comments: comments,
	}
}

// Create stores a new video for the owner. The file itself has already
// been persisted by the upload sink and tags extracted at the boundary.
func (s *VideoService) Create(ctx context.Context, ownerID int64, req model.CreateVideoRequest) (*model.VideoWithUser, error) {
	if req.Duration <= 0 || req.Duration > model.MaxVideoDuration {
		return nil, model.ErrInvalidDuration
	}

	video := &model.Video{
		UserID:       ownerID,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Caption:      req.Caption,
		Tags:         pq.StringArray(req.Tags),
		Duration:     req.Duration,
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}

	return s.GetWithDetails(ctx, video.ID, &ownerID)
}

// GetWithDetails assembles the denormalized video view for an optional
// viewer. A missing author is treated as not-found: referential
// integrity should prevent it, but the contract tolerates it.
func (s *VideoService) GetWithDetails(ctx context.Context, videoID int64, viewerID *int64) (*model.VideoWithUser, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	enriched, err := s.enrich(ctx, []model.Video{*video}, viewerID)
	if err != nil {
		return nil, err
	}
	if len(enriched) == 0 {
		return nil, model.ErrVideoNotFound
	}
	return &enriched[0], nil
}

// GetFeed returns the reverse-chronological feed page. No ranking and no
// personalization beyond the per-viewer is_liked flag.
func (s *VideoService) GetFeed(ctx context.Context, limit, offset int, viewerID *int64) ([]model.VideoWithUser, error) {
	if limit <= 0 {
		limit = FeedDefaultLimit
	}
	if limit > FeedMaxLimit {
		limit = FeedMaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	videos, err := s.videos.GetFeed(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, videos, viewerID)
}

// GetUserVideos returns all of a user's videos, newest first.
func (s *VideoService) GetUserVideos(ctx context.Context, userID int64, viewerID *int64) ([]model.VideoWithUser, error) {
	videos, err := s.videos.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, videos, viewerID)
}

// Search matches captions and tags; empty query yields an empty result.
func (s *VideoService) Search(ctx context.Context, query string, viewerID *int64) ([]model.VideoWithUser, error) {
	videos, err := s.videos.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, videos, viewerID)
}

// IncrementViews bumps the view counter; a missing video is a no-op.
func (s *VideoService) IncrementViews(ctx context.Context, videoID int64) error {
	return s.videos.IncrementViews(ctx, videoID)
}

// Like records a like for the pair. Re-liking is a successful no-op, not
// an error: the repository's conflict-is-success insert returns the
// existing record. Returns the fresh like count.
func (s *VideoService) Like(ctx context.Context, userID, videoID int64) (int, error) {
	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, model.ErrVideoNotFound
	}

	if _, err := s.likes.Create(ctx, userID, videoID); err != nil {
		return 0, err
	}

	return s.likes.CountByVideo(ctx, videoID)
}

// Unlike removes the like if present; unliking a never-liked video is a
// no-op. Returns the fresh like count.
func (s *VideoService) Unlike(ctx context.Context, userID, videoID int64) (int, error) {
	if err := s.likes.Delete(ctx, userID, videoID); err != nil {
		return 0, err
	}

	return s.likes.CountByVideo(ctx, videoID)
}

// enrich joins a page of videos with their authors and aggregate counts
// using batch queries (one per concern, keyed with ANY($n)) rather than
// per-video lookups. Videos whose author is missing are dropped.
func (s *VideoService) enrich(ctx context.Context, videos []model.Video, viewerID *int64) ([]model.VideoWithUser, error) {
	if len(videos) == 0 {
		return []model.VideoWithUser{}, nil
	}

	videoIDs := make([]int64, len(videos))
	authorIDs := make([]int64, 0, len(videos))
	seen := make(map[int64]struct{}, len(videos))
	for i, v := range videos {
		videoIDs[i] = v.ID
		if _, ok := seen[v.UserID]; !ok {
			seen[v.UserID] = struct{}{}
			authorIDs = append(authorIDs, v.UserID)
		}
	}

	authors, err := s.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch authors: %w", err)
	}

	likeCounts, err := s.likes.CountByVideos(ctx, videoIDs)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	commentCounts, err := s.comments.CountByVideos(ctx, videoIDs)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	var likedMap map[int64]bool
	if viewerID != nil {
		likedMap, err = s.likes.CheckLiked(ctx, *viewerID, videoIDs)
		if err != nil {
			return nil, fmt.Errorf("check likes: %w", err)
		}
	}

	result := make([]model.VideoWithUser, 0, len(videos))
	for _, v := range videos {
		author, ok := authors[v.UserID]
		if !ok {
			continue
		}

		item := model.VideoWithUser{
			Video:        v,
			User:         author,
			LikeCount:    likeCounts[v.ID],
			CommentCount: commentCounts[v.ID],
		}
		if viewerID != nil {
			liked := likedMap[v.ID]
			item.IsLiked = &liked
		}
		result = append(result, item)
	}

	return result, nil
}
