package storage

import (
	"context"
	"fmt"

	"cardlink/internal/config"
)

// NewFromConfig selects the photo storage backend from the environment.
// PHOTO_STORAGE is one of filesystem (default), memory or s3.
func NewFromConfig(ctx context.Context) (Storage, error) {
	switch backend := config.GetEnv("PHOTO_STORAGE", "filesystem"); backend {
	case "memory":
		return NewMemoryStorage(), nil
	case "filesystem":
		return NewFileSystemStorage(config.GetEnv("UPLOAD_DIR", "uploads"))
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Bucket:    config.GetEnv("S3_BUCKET", ""),
			Region:    config.GetEnv("S3_REGION", "us-east-1"),
			Prefix:    config.GetEnv("S3_PREFIX", "photos"),
			Endpoint:  config.GetEnv("S3_ENDPOINT", ""),
			AccessKey: config.GetEnv("S3_ACCESS_KEY", ""),
			SecretKey: config.GetEnv("S3_SECRET_KEY", ""),
		})
	default:
		return nil, fmt.Errorf("unknown photo storage backend: %s", backend)
	}
}
