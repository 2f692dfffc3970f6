package ports

import (
	"context"
	"io"
	"time"
)

// ObjectStore abstracts the S3-compatible store holding uploaded file content.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	// SignedURL returns a pre-authorized, time-limited download link.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
