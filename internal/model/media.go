package model

import "errors"

const (
	MaxPictureSizeBytes = 5 * 1024 * 1024 // 5MB limit for profile pictures
	PictureWidth        = 200
	PictureHeight       = 200
	PictureFolder       = "pictures"
	VideoFolder         = "videos"
)

// Supported image content types for profile picture uploads
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
)

var allowedImageTypes = map[string]struct{}{
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
	ContentTypeGIF:  {},
	ContentTypeWebP: {},
}

// Domain errors for media operations
var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("invalid image type")
)

// UploadResult is the response for a successful profile picture upload:
// the stored object's public URL plus the updated owning user.
type UploadResult struct {
	URL  string `json:"url"`
	User *User  `json:"user,omitempty"`
}

// IsAllowedImageType reports if the provided content type is supported
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}
