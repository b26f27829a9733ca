package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"funlife/internal/model"
)

// LocalSink stores uploads on the local filesystem and serves them from
// a static route. This is the development default when no R2 credentials
// are configured.
type LocalSink struct {
	dir     string
	baseURL string
}

// NewLocalSink creates the upload directory if needed.
func NewLocalSink(dir, baseURL string) (*LocalSink, error) {
	if err := os.MkdirAll(filepath.Join(dir, model.VideoFolder), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, model.PictureFolder), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalSink{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Dir returns the root directory served as static uploads.
func (s *LocalSink) Dir() string {
	return s.dir
}

func (s *LocalSink) SaveVideo(ctx context.Context, r io.Reader, ext string) (string, error) {
	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, model.VideoFolder, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create video file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write video file: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, model.VideoFolder, name), nil
}

func (s *LocalSink) SaveImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if !model.IsAllowedImageType(contentType) {
		return "", model.ErrInvalidImageType
	}

	name := uuid.NewString() + extForImageType(contentType)
	path := filepath.Join(s.dir, model.PictureFolder, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, model.PictureFolder, name), nil
}

func extForImageType(contentType string) string {
	switch contentType {
	case model.ContentTypePNG:
		return ".png"
	case model.ContentTypeGIF:
		return ".gif"
	case model.ContentTypeWebP:
		return ".webp"
	default:
		return ".jpg"
	}
}
