package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"funlife/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, password_hashed, display_name, bio, profile_picture, website)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		u.Username,
		u.PasswordHashed,
		u.DisplayName,
		u.Bio,
		u.ProfilePicture,
		u.Website,
	).Scan(&u.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return model.ErrUsernameExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, username, password_hashed, display_name, bio, profile_picture, website
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByIDs batch-fetches users to avoid N+1 lookups when enriching videos.
func (r *userRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.User, error) {
	if len(ids) == 0 {
		return map[int64]model.User{}, nil
	}

	query := `
		SELECT id, username, password_hashed, display_name, bio, profile_picture, website
		FROM users
		WHERE id = ANY($1)
	`

	var users []model.User
	err := r.db.SelectContext(ctx, &users, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}

	result := make(map[int64]model.User, len(users))
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// GetByUsername retrieves a user by username, case-insensitively.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hashed, display_name, bio, profile_picture, website
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

// ExistsByUsername checks if a username is already taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// Update applies a partial profile update. Only non-nil fields are
// written; the password column is never touched here.
func (r *userRepository) Update(ctx context.Context, id int64, updates model.UpdateUserRequest) (*model.User, error) {
	sets := []string{}
	args := []interface{}{}
	arg := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, arg))
		args = append(args, value)
		arg++
	}

	if updates.Username != nil {
		appendSet("username", *updates.Username)
	}
	if updates.DisplayName != nil {
		appendSet("display_name", *updates.DisplayName)
	}
	if updates.Bio != nil {
		appendSet("bio", *updates.Bio)
	}
	if updates.ProfilePicture != nil {
		appendSet("profile_picture", *updates.ProfilePicture)
	}
	if updates.Website != nil {
		appendSet("website", *updates.Website)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE users SET %s
		WHERE id = $%d
		RETURNING id, username, password_hashed, display_name, bio, profile_picture, website
	`, strings.Join(sets, ", "), arg)
	args = append(args, id)

	var u model.User
	err := r.db.GetContext(ctx, &u, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, model.ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &u, nil
}

// Search matches username or display name with a case-insensitive
// substring. An empty query returns an empty slice, never all users.
func (r *userRepository) Search(ctx context.Context, query string) ([]model.User, error) {
	if query == "" {
		return []model.User{}, nil
	}

	searchQuery := `
		SELECT id, username, password_hashed, display_name, bio, profile_picture, website
		FROM users
		WHERE username ILIKE $1 OR display_name ILIKE $1
		ORDER BY id
	`

	users := []model.User{}
	err := r.db.SelectContext(ctx, &users, searchQuery, escapeLikePattern(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}
