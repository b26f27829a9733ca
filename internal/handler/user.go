package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"funlife/internal/httputil"
	"funlife/internal/model"
	"funlife/internal/service"
	"funlife/internal/transport/http/middleware"
)

type UserHandler struct {
	userService  *service.UserService
	videoService *service.VideoService
}

func NewUserHandler(userService *service.UserService, videoService *service.VideoService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		videoService: videoService,
	}
}

// GetProfile handles GET /api/users/{id}
// Returns the user with recomputed video/follower/following counts; when
// the request has a viewer, is_following is included as well.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	viewerID := middleware.OptionalViewerID(r.Context())

	profile, err := h.userService.GetWithStats(r.Context(), userID, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] GetProfile handler: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// Update handles PATCH /api/users/{id}
// The acting viewer must be the profile owner.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerID(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	if viewerID != userID {
		httputil.WriteForbidden(w, "Cannot edit another user's profile")
		return
	}

	var updates model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if updates.Empty() {
		httputil.WriteValidationError(w, "No fields to update")
		return
	}

	user, err := h.userService.Update(r.Context(), userID, updates)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Username already taken")
		default:
			log.Printf("[ERROR] Update user handler: %v", err)
			httputil.WriteInternalError(w, "Failed to update profile")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Search handles GET /api/users/search?q=
// An empty query returns an empty list, never the whole user table.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	users, err := h.userService.Search(r.Context(), query)
	if err != nil {
		log.Printf("[ERROR] Search users handler: %v", err)
		httputil.WriteInternalError(w, "Failed to search users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// GetVideos handles GET /api/users/{id}/videos
func (h *UserHandler) GetVideos(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	viewerID := middleware.OptionalViewerID(r.Context())

	videos, err := h.videoService.GetUserVideos(r.Context(), userID, viewerID)
	if err != nil {
		log.Printf("[ERROR] GetVideos handler: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch user videos")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, videos)
}
