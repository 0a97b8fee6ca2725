package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Tnmoxa/epg-task/internal/config"
)

// BlobStore accepts raw image bytes and returns a stored reference.
type BlobStore interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
}

// AvatarStore keeps user avatars in a MinIO bucket.
type AvatarStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewAvatarStore builds the MinIO client and ensures the bucket exists.
func NewAvatarStore(ctx context.Context, cfg *config.Config) (*AvatarStore, error) {
	if strings.TrimSpace(cfg.MinIO.Endpoint) == "" {
		return nil, errors.New("minio endpoint is empty")
	}

	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(checkCtx, cfg.MinIO.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(checkCtx, cfg.MinIO.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	baseURL := cfg.MinIO.BaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.MinIO.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, cfg.MinIO.Endpoint)
	}

	return &AvatarStore{
		client:  client,
		bucket:  cfg.MinIO.Bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload stores the avatar under a random object name and returns its URL.
func (s *AvatarStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	objectName := "avatars/" + uuid.New().String() + extensionFor(contentType)

	if _, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName), nil
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
