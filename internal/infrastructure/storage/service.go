// Package storage provides object storage implementations for image files.
package storage

import (
	"context"
	"time"
)

// ObjectStorageService abstracts S3-compatible storage for image objects.
// Uploads happen directly from the client against presigned URLs; the API
// never proxies file bytes.
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned PUT URL for the given key
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL for the given key
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
