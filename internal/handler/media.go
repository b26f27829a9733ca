package handler

import (
	"errors"
	"log"
	"net/http"

	"funlife/internal/httputil"
	"funlife/internal/model"
	"funlife/internal/service"
	"funlife/internal/storage"
	"funlife/internal/transport/http/middleware"
)

type MediaHandler struct {
	userService *service.UserService
	sink        storage.Sink
}

func NewMediaHandler(userService *service.UserService, sink storage.Sink) *MediaHandler {
	return &MediaHandler{
		userService: userService,
		sink:        sink,
	}
}

// UploadProfilePicture handles POST /api/media/profile-picture
// Accepts a multipart "picture" field, normalizes it to a 200x200 JPEG
// and points the caller's profile at the stored copy.
func (h *MediaHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetViewerID(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, model.MaxPictureSizeBytes+1<<20)
	if err := r.ParseMultipartForm(model.MaxPictureSizeBytes); err != nil {
		httputil.WriteValidationError(w, "Picture too large or malformed form")
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		httputil.WriteValidationError(w, "Picture file is required")
		return
	}
	defer file.Close()

	data, _, err := storage.ReadAndValidateImage(file, header, model.MaxPictureSizeBytes)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge), errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteValidationError(w, err.Error())
		default:
			log.Printf("[ERROR] UploadProfilePicture handler: read: %v", err)
			httputil.WriteInternalError(w, "Failed to read picture")
		}
		return
	}

	resized, err := storage.ResizeToJPEG(data, model.PictureWidth, model.PictureHeight, 85)
	if err != nil {
		httputil.WriteValidationError(w, "Could not decode image")
		return
	}

	url, err := h.sink.SaveImage(r.Context(), resized, model.ContentTypeJPEG)
	if err != nil {
		log.Printf("[ERROR] UploadProfilePicture handler: save: %v", err)
		httputil.WriteInternalError(w, "Failed to store picture")
		return
	}

	updates := model.UpdateUserRequest{ProfilePicture: &url}
	user, err := h.userService.Update(r.Context(), userID, updates)
	if err != nil {
		log.Printf("[ERROR] UploadProfilePicture handler: update user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to update profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.UploadResult{
		URL:  url,
		User: user,
	})
}
