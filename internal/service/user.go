package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"funlife/internal/model"
	"funlife/internal/repository"
)

// UserService handles account management and the user-with-stats
// aggregation.
type UserService struct {
	users   repository.UserRepository
	videos  repository.VideoRepository
	follows repository.FollowRepository
}

func NewUserService(
	users repository.UserRepository,
	videos repository.VideoRepository,
	follows repository.FollowRepository,
) *UserService {
	return &UserService{
		users:   users,
		videos:  videos,
		follows: follows,
	}
}

// Register creates a new user account.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, model.ErrUsernameRequired
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, model.ErrPasswordRequired
	}

	// Check first for a friendly error; the unique index on username is
	// what actually guarantees no duplicate slips through.
	exists, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		PasswordHashed: string(hashedPassword),
		DisplayName:    req.DisplayName,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		Website:        req.Website,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user with username and password.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		// Don't reveal whether the username exists or not
		return nil, model.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password))
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetWithStats assembles the user profile view: the user plus video,
// follower and following counts, all recomputed from the base tables on
// every call. IsFollowing is only set when a viewer is known.
func (s *UserService) GetWithStats(ctx context.Context, userID int64, viewerID *int64) (*model.UserWithStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	videoCount, err := s.videos.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	followerCount, err := s.follows.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	followingCount, err := s.follows.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &model.UserWithStats{
		User:           *user,
		VideoCount:     videoCount,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}

	if viewerID != nil {
		isFollowing, err := s.follows.Exists(ctx, *viewerID, userID)
		if err != nil {
			return nil, err
		}
		stats.IsFollowing = &isFollowing
	}

	return stats, nil
}

// Update applies a partial profile update. The password is never
// updatable through this path; ownership is enforced at the boundary.
func (s *UserService) Update(ctx context.Context, userID int64, updates model.UpdateUserRequest) (*model.User, error) {
	return s.users.Update(ctx, userID, updates)
}

// Search finds users by username or display name. An empty query yields
// an empty result, never the full user table.
func (s *UserService) Search(ctx context.Context, query string) ([]model.User, error) {
	return s.users.Search(ctx, query)
}
