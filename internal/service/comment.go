package service

import (
	"context"
	"strings"

	"funlife/internal/model"
	"funlife/internal/repository"
)

type CommentService struct {
	comments repository.CommentRepository
	users    repository.UserRepository
	videos   repository.VideoRepository
}

func NewCommentService(
	comments repository.CommentRepository,
	users repository.UserRepository,
	videos repository.VideoRepository,
) *CommentService {
	return &CommentService{
		comments: comments,
		users:    users,
		videos:   videos,
	}
}

// Create adds a comment to a video and returns it joined with its author.
func (s *CommentService) Create(ctx context.Context, userID, videoID int64, content string) (*model.CommentWithUser, error) {
	if strings.TrimSpace(content) == "" {
		return nil, model.ErrCommentContentRequired
	}

	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrVideoNotFound
	}

	comment := &model.Comment{
		UserID:  userID,
		VideoID: videoID,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.CommentWithUser{
		Comment:   *comment,
		User:      *author,
		LikeCount: 0,
	}, nil
}

// GetByVideo returns a video's comments newest first, each joined with
// its author. Authors are fetched in one batch query.
func (s *CommentService) GetByVideo(ctx context.Context, videoID int64) ([]model.CommentWithUser, error) {
	comments, err := s.comments.GetByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []model.CommentWithUser{}, nil
	}

	authorIDs := make([]int64, 0, len(comments))
	seen := make(map[int64]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			authorIDs = append(authorIDs, c.UserID)
		}
	}

	authors, err := s.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	result := make([]model.CommentWithUser, 0, len(comments))
	for _, c := range comments {
		author, ok := authors[c.UserID]
		if !ok {
			continue
		}
		result = append(result, model.CommentWithUser{
			Comment:   c,
			User:      author,
			LikeCount: 0,
		})
	}

	return result, nil
}
