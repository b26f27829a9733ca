package storage

import (
	"context"
	"io"
)

// Sink is the binary upload boundary: it accepts already-validated
// payloads and returns a stable public URL. Two implementations exist,
// a local-disk sink and an S3-compatible (Cloudflare R2) sink; which one
// runs is a configuration choice, the core never knows the difference.
type Sink interface {
	// SaveVideo streams a video payload to storage. ext is the original
	// file extension including the dot (".mp4").
	SaveVideo(ctx context.Context, r io.Reader, ext string) (url string, err error)

	// SaveImage stores an already-encoded image (profile pictures,
	// thumbnails). contentType must be one of the allowed image types.
	SaveImage(ctx context.Context, data []byte, contentType string) (url string, err error)
}
