package services

import (
	"context"
	"io"
)

// BlobStore is the object-storage contract consumed by document operations.
type BlobStore interface {
	// Upload stores an object under key
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error

	// Delete removes an object; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// FileURL returns the public URL for a stored object
	FileURL(key string) string
}
