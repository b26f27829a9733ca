package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"funlife/internal/config"
	"funlife/internal/model"
)

// R2Sink stores uploads in an S3-compatible bucket (Cloudflare R2) and
// serves them from the bucket's public endpoint.
type R2Sink struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
}

// NewR2Sink constructs an S3-compatible client for Cloudflare R2.
func NewR2Sink(ctx context.Context, cfg *config.Config) (*R2Sink, error) {
	if !cfg.UseR2() {
		return nil, fmt.Errorf("missing Cloudflare R2 configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for R2: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Sink{
		s3Client:  s3Client,
		bucket:    cfg.R2BucketName,
		publicURL: strings.TrimSuffix(cfg.R2PublicURL, "/"),
	}, nil
}

func (s *R2Sink) SaveVideo(ctx context.Context, r io.Reader, ext string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", model.VideoFolder, uuid.NewString(), ext)

	// The handler has already enforced the 50MB cap, so buffering the
	// payload for a single PutObject is bounded.
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read video payload: %w", err)
	}

	if err := s.putObject(ctx, key, data, "video/mp4"); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

func (s *R2Sink) SaveImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if !model.IsAllowedImageType(contentType) {
		return "", model.ErrInvalidImageType
	}

	key := fmt.Sprintf("%s/%s%s", model.PictureFolder, uuid.NewString(), extForImageType(contentType))

	if err := s.putObject(ctx, key, data, contentType); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

func (s *R2Sink) putObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return nil
}
