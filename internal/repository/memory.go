package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"funlife/internal/model"
)

// MemStore is a map-backed implementation of all five repositories. It
// mirrors the Postgres implementations' contracts exactly (same ordering,
// same idempotency, same search semantics) so services behave identically
// against either backend. Used by the test suite and for local
// development without a database.
type MemStore struct {
	mu sync.Mutex

	users    map[int64]model.User
	videos   map[int64]model.Video
	likes    map[int64]model.Like
	comments map[int64]model.Comment
	follows  map[int64]model.Follow

	nextUserID    int64
	nextVideoID   int64
	nextLikeID    int64
	nextCommentID int64
	nextFollowID  int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:         make(map[int64]model.User),
		videos:        make(map[int64]model.Video),
		likes:         make(map[int64]model.Like),
		comments:      make(map[int64]model.Comment),
		follows:       make(map[int64]model.Follow),
		nextUserID:    1,
		nextVideoID:   1,
		nextLikeID:    1,
		nextCommentID: 1,
		nextFollowID:  1,
	}
}

func (s *MemStore) Users() UserRepository       { return &memUserRepository{s} }
func (s *MemStore) Videos() VideoRepository     { return &memVideoRepository{s} }
func (s *MemStore) Likes() LikeRepository       { return &memLikeRepository{s} }
func (s *MemStore) Comments() CommentRepository { return &memCommentRepository{s} }
func (s *MemStore) Follows() FollowRepository   { return &memFollowRepository{s} }

// sortVideosNewestFirst applies the feed ordering: created_at DESC with
// id DESC as the deterministic tie-break.
func sortVideosNewestFirst(videos []model.Video) {
	sort.Slice(videos, func(i, j int) bool {
		if !videos[i].CreatedAt.Equal(videos[j].CreatedAt) {
			return videos[i].CreatedAt.After(videos[j].CreatedAt)
		}
		return videos[i].ID > videos[j].ID
	})
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// --- users ---

type memUserRepository struct {
	s *MemStore
}

func (r *memUserRepository) Create(ctx context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return model.ErrUsernameExists
		}
	}

	u.ID = r.s.nextUserID
	r.s.nextUserID++
	r.s.users[u.ID] = *u
	return nil
}

func (r *memUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (r *memUserRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[int64]model.User, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

func (r *memUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			u := u
			return &u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *memUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepository) Update(ctx context.Context, id int64, updates model.UpdateUserRequest) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}

	if updates.Username != nil {
		for otherID, other := range r.s.users {
			if otherID != id && strings.EqualFold(other.Username, *updates.Username) {
				return nil, model.ErrUsernameExists
			}
		}
		u.Username = *updates.Username
	}
	if updates.DisplayName != nil {
		u.DisplayName = updates.DisplayName
	}
	if updates.Bio != nil {
		u.Bio = updates.Bio
	}
	if updates.ProfilePicture != nil {
		u.ProfilePicture = updates.ProfilePicture
	}
	if updates.Website != nil {
		u.Website = updates.Website
	}

	r.s.users[id] = u
	return &u, nil
}

func (r *memUserRepository) Search(ctx context.Context, query string) ([]model.User, error) {
	if query == "" {
		return []model.User{}, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	results := []model.User{}
	for _, u := range r.s.users {
		if containsFold(u.Username, query) ||
			(u.DisplayName != nil && containsFold(*u.DisplayName, query)) {
			results = append(results, u)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

// --- videos ---

type memVideoRepository struct {
	s *MemStore
}

func (r *memVideoRepository) Create(ctx context.Context, v *model.Video) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v.ID = r.s.nextVideoID
	r.s.nextVideoID++
	v.CreatedAt = time.Now()
	v.Views = 0
	r.s.videos[v.ID] = *v
	return nil
}

func (r *memVideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.videos[id]
	if !ok {
		return nil, model.ErrVideoNotFound
	}
	return &v, nil
}

func (r *memVideoRepository) GetFeed(ctx context.Context, limit, offset int) ([]model.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := make([]model.Video, 0, len(r.s.videos))
	for _, v := range r.s.videos {
		all = append(all, v)
	}
	sortVideosNewestFirst(all)

	if offset >= len(all) {
		return []model.Video{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memVideoRepository) GetByUser(ctx context.Context, userID int64) ([]model.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	videos := []model.Video{}
	for _, v := range r.s.videos {
		if v.UserID == userID {
			videos = append(videos, v)
		}
	}
	sortVideosNewestFirst(videos)
	return videos, nil
}

func (r *memVideoRepository) Search(ctx context.Context, query string) ([]model.Video, error) {
	if query == "" {
		return []model.Video{}, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	videos := []model.Video{}
	for _, v := range r.s.videos {
		match := v.Caption != nil && containsFold(*v.Caption, query)
		if !match {
			for _, tag := range v.Tags {
				if containsFold(tag, query) {
					match = true
					break
				}
			}
		}
		if match {
			videos = append(videos, v)
		}
	}
	sortVideosNewestFirst(videos)
	return videos, nil
}

func (r *memVideoRepository) IncrementViews(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.videos[id]
	if !ok {
		return nil // missing video is a silent no-op
	}
	v.Views++
	r.s.videos[id] = v
	return nil
}

func (r *memVideoRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	count := 0
	for _, v := range r.s.videos {
		if v.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memVideoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.videos[id]
	return ok, nil
}

// --- likes ---

type memLikeRepository struct {
	s *MemStore
}

func (r *memLikeRepository) Create(ctx context.Context, userID, videoID int64) (*model.Like, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// The mutex plays the role of the unique constraint: check and insert
	// are one critical section, so duplicates can never race in.
	for _, l := range r.s.likes {
		if l.UserID == userID && l.VideoID == videoID {
			l := l
			return &l, nil
		}
	}

	like := model.Like{
		ID:        r.s.nextLikeID,
		UserID:    userID,
		VideoID:   videoID,
		CreatedAt: time.Now(),
	}
	r.s.nextLikeID++
	r.s.likes[like.ID] = like
	return &like, nil
}

func (r *memLikeRepository) Delete(ctx context.Context, userID, videoID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, l := range r.s.likes {
		if l.UserID == userID && l.VideoID == videoID {
			delete(r.s.likes, id)
			return nil
		}
	}
	return nil
}

func (r *memLikeRepository) Exists(ctx context.Context, userID, videoID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.likes {
		if l.UserID == userID && l.VideoID == videoID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memLikeRepository) CountByVideo(ctx context.Context, videoID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	count := 0
	for _, l := range r.s.likes {
		if l.VideoID == videoID {
			count++
		}
	}
	return count, nil
}

func (r *memLikeRepository) CountByVideos(ctx context.Context, videoIDs []int64) (map[int64]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[int64]int, len(videoIDs))
	for _, id := range videoIDs {
		result[id] = 0
	}
	for _, l := range r.s.likes {
		if _, wanted := result[l.VideoID]; wanted {
			result[l.VideoID]++
		}
	}
	return result, nil
}

func (r *memLikeRepository) CheckLiked(ctx context.Context, userID int64, videoIDs []int64) (map[int64]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[int64]bool, len(videoIDs))
	for _, id := range videoIDs {
		result[id] = false
	}
	for _, l := range r.s.likes {
		if l.UserID == userID {
			if _, wanted := result[l.VideoID]; wanted {
				result[l.VideoID] = true
			}
		}
	}
	return result, nil
}

// --- comments ---

type memCommentRepository struct {
	s *MemStore
}

func (r *memCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c.ID = r.s.nextCommentID
	r.s.nextCommentID++
	c.CreatedAt = time.Now()
	r.s.comments[c.ID] = *c
	return nil
}

func (r *memCommentRepository) GetByVideo(ctx context.Context, videoID int64) ([]model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comments := []model.Comment{}
	for _, c := range r.s.comments {
		if c.VideoID == videoID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

func (r *memCommentRepository) CountByVideos(ctx context.Context, videoIDs []int64) (map[int64]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[int64]int, len(videoIDs))
	for _, id := range videoIDs {
		result[id] = 0
	}
	for _, c := range r.s.comments {
		if _, wanted := result[c.VideoID]; wanted {
			result[c.VideoID]++
		}
	}
	return result, nil
}

// --- follows ---

type memFollowRepository struct {
	s *MemStore
}

func (r *memFollowRepository) Create(ctx context.Context, followerID, followedID int64) (*model.Follow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			f := f
			return &f, nil
		}
	}

	follow := model.Follow{
		ID:         r.s.nextFollowID,
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now(),
	}
	r.s.nextFollowID++
	r.s.follows[follow.ID] = follow
	return &follow, nil
}

func (r *memFollowRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			delete(r.s.follows, id)
			return nil
		}
	}
	return nil
}

func (r *memFollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, f := range r.s.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFollowRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	count := 0
	for _, f := range r.s.follows {
		if f.FollowedID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memFollowRepository) CountFollowing(ctx context.Context, userID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	count := 0
	for _, f := range r.s.follows {
		if f.FollowerID == userID {
			count++
		}
	}
	return count, nil
}
