package model

import "errors"

// User represents a user account.
type User struct {
	ID             int64   `db:"id" json:"id"`
	Username       string  `db:"username" json:"username"`
	PasswordHashed string  `db:"password_hashed" json:"-"` // "-" hides from JSON output
	DisplayName    *string `db:"display_name" json:"display_name"`
	Bio            *string `db:"bio" json:"bio"`
	ProfilePicture *string `db:"profile_picture" json:"profile_picture"`
	Website        *string `db:"website" json:"website"`
}

// UserWithStats is a user joined with aggregate counts, recomputed on
// every read. IsFollowing is only set when the request has a viewer.
type UserWithStats struct {
	User
	VideoCount     int   `json:"video_count"`
	FollowerCount  int   `json:"follower_count"`
	FollowingCount int   `json:"following_count"`
	IsFollowing    *bool `json:"is_following,omitempty"`
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Username       string  `json:"username"`
	Password       string  `json:"password"`
	DisplayName    *string `json:"display_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	Website        *string `json:"website"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// UpdateUserRequest is a partial profile update. Nil fields are left
// untouched. The password is deliberately not updatable through this path.
type UpdateUserRequest struct {
	Username       *string `json:"username"`
	DisplayName    *string `json:"display_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	Website        *string `json:"website"`
}

// Empty reports whether the update would change nothing.
func (r UpdateUserRequest) Empty() bool {
	return r.Username == nil && r.DisplayName == nil && r.Bio == nil &&
		r.ProfilePicture == nil && r.Website == nil
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already taken")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameRequired is returned when registering without a username
	ErrUsernameRequired = errors.New("username is required")

	// ErrPasswordRequired is returned when registering without a password
	ErrPasswordRequired = errors.New("password is required")
)
