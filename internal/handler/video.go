package handler

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"funlife/internal/httputil"
	"funlife/internal/model"
	"funlife/internal/service"
	"funlife/internal/storage"
	"funlife/internal/transport/http/middleware"
)

type VideoHandler struct {
	videoService *service.VideoService
	sink         storage.Sink
}

func NewVideoHandler(videoService *service.VideoService, sink storage.Sink) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		sink:         sink,
	}
}

// Create handles POST /api/videos
// Multipart form: "video" file (video/* only, max 50MB), plus duration,
// caption, tags and thumbnail_url fields. Tag extraction happens here at
// the boundary, before the service sees the request.
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetViewerID(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	// Cap the whole request a bit above the video limit to leave room
	// for the other form fields.
	r.Body = http.MaxBytesReader(w, r.Body, model.MaxVideoSizeBytes+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.WriteValidationError(w, "Video file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		httputil.WriteValidationError(w, model.ErrNoVideoFile.Error())
		return
	}
	defer file.Close()

	if header.Size > model.MaxVideoSizeBytes {
		httputil.WriteValidationError(w, model.ErrVideoTooLarge.Error())
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		httputil.WriteValidationError(w, model.ErrNotVideoFile.Error())
		return
	}

	duration, err := strconv.Atoi(r.FormValue("duration"))
	if err != nil || duration <= 0 || duration > model.MaxVideoDuration {
		httputil.WriteValidationError(w, model.ErrInvalidDuration.Error())
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".mp4"
	}
	videoURL, err := h.sink.SaveVideo(r.Context(), file, ext)
	if err != nil {
		log.Printf("[ERROR] Create video handler: save file: %v", err)
		httputil.WriteInternalError(w, "Failed to store video")
		return
	}

	req := model.CreateVideoRequest{
		VideoURL: videoURL,
		Tags:     ExtractTags(r.FormValue("tags")),
		Duration: duration,
	}
	if caption := r.FormValue("caption"); caption != "" {
		req.Caption = &caption
	}
	if thumb := r.FormValue("thumbnail_url"); thumb != "" {
		req.ThumbnailURL = &thumb
	}

	video, err := h.videoService.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDuration) {
			httputil.WriteValidationError(w, err.Error())
			return
		}
		log.Printf("[ERROR] Create video handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to create video")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, video)
}

// GetFeed handles GET /api/videos/feed?limit=&offset=
// Reverse-chronological, offset-paginated; the viewer only influences
// the is_liked flag.
func (h *VideoHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteBadRequest(w, "Invalid limit")
			return
		}
		limit = parsed
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httputil.WriteBadRequest(w, "Invalid offset")
			return
		}
		offset = parsed
	}

	viewerID := middleware.OptionalViewerID(r.Context())

	videos, err := h.videoService.GetFeed(r.Context(), limit, offset, viewerID)
	if err != nil {
		log.Printf("[ERROR] GetFeed handler: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, videos)
}

// GetByID handles GET /api/videos/{id}
// Returns the enriched video and bumps its view counter.
func (h *VideoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	viewerID := middleware.OptionalViewerID(r.Context())

	video, err := h.videoService.GetWithDetails(r.Context(), videoID, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrVideoNotFound) {
			httputil.WriteNotFound(w, "Video not found")
			return
		}
		log.Printf("[ERROR] GetByID video handler: %v", err)
		httputil.WriteInternalError(w, "Failed to fetch video")
		return
	}

	if err := h.videoService.IncrementViews(r.Context(), videoID); err != nil {
		log.Printf("[ERROR] GetByID video handler: increment views: %v", err)
	}

	httputil.WriteJSON(w, http.StatusOK, video)
}

// Search handles GET /api/videos/search?q=
func (h *VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	viewerID := middleware.OptionalViewerID(r.Context())

	videos, err := h.videoService.Search(r.Context(), query, viewerID)
	if err != nil {
		log.Printf("[ERROR] Search videos handler: %v", err)
		httputil.WriteInternalError(w, "Failed to search videos")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, videos)
}

// Like handles POST /api/videos/{id}/like
// Idempotent: re-liking succeeds without creating a second record.
func (h *VideoHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetViewerID(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	likeCount, err := h.videoService.Like(r.Context(), userID, videoID)
	if err != nil {
		if errors.Is(err, model.ErrVideoNotFound) {
			httputil.WriteNotFound(w, "Video not found")
			return
		}
		log.Printf("[ERROR] Like handler: %v", err)
		httputil.WriteInternalError(w, "Failed to like video")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.LikeResponse{
		Message:   "Successfully liked video",
		LikeCount: likeCount,
	})
}

// Unlike handles DELETE /api/videos/{id}/like
// Unliking a never-liked video is a successful no-op.
func (h *VideoHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetViewerID(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	likeCount, err := h.videoService.Unlike(r.Context(), userID, videoID)
	if err != nil {
		log.Printf("[ERROR] Unlike handler: %v", err)
		httputil.WriteInternalError(w, "Failed to unlike video")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.LikeResponse{
		Message:   "Successfully unliked video",
		LikeCount: likeCount,
	})
}
